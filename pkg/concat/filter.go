package concat

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// EntryFilter decides whether a traversal entry becomes a document. It
// rejects non-regular files, applies the extension allow-set, and re-checks
// the ignore patterns against bare file names when configured to.
type EntryFilter struct {
	allowed   map[string]struct{}
	filesOnly []string
	logger    *zap.Logger
}

// NewEntryFilter builds the filter from the run configuration. Extensions
// are matched case-insensitively, with or without a leading dot.
func NewEntryFilter(cfg Config, logger *zap.Logger) *EntryFilter {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &EntryFilter{logger: logger}

	if len(cfg.Extensions) > 0 {
		f.allowed = make(map[string]struct{}, len(cfg.Extensions))
		for _, ext := range cfg.Extensions {
			f.allowed[normalizeExtension(ext)] = struct{}{}
		}
	}

	if cfg.IgnoreFilesOnly {
		f.filesOnly = cfg.IgnorePatterns
	}

	return f
}

// Keep reports whether the entry should proceed to content loading.
func (f *EntryFilter) Keep(entry FileEntry) bool {
	if !entry.Entry.Type().IsRegular() {
		return false
	}

	if len(f.allowed) > 0 {
		ext := normalizeExtension(filepath.Ext(entry.Path))
		if ext == "" {
			return false
		}
		if _, ok := f.allowed[ext]; !ok {
			return false
		}
	}

	if len(f.filesOnly) > 0 {
		name := filepath.Base(entry.Path)
		for _, pattern := range f.filesOnly {
			matched, err := filepath.Match(pattern, name)
			if err != nil {
				f.logger.Warn("Invalid file-only ignore pattern",
					zap.String("pattern", pattern),
					zap.Error(err))
				continue
			}
			if matched {
				return false
			}
		}
	}

	return true
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
