// Package logging builds the zap logger shared across promptcat.
package logging

import (
	"promptcat/pkg/version"

	"go.uber.org/zap"
)

// New returns the application logger. Verbose mode uses the development
// config at debug level; otherwise only warnings and errors are emitted, in
// the production format, keeping stdout free for document output.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config

	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.InitialFields = map[string]interface{}{
		"app":        "promptcat",
		"appVersion": version.Get().Version,
	}

	return cfg.Build()
}
