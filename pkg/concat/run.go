package concat

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/term"

	"promptcat/pkg/ignore"
)

// Run executes one concatenation pass: resolve the input roots, open the
// sink, and stream every surviving file through the formatter in discovery
// order. An empty resolved input exits cleanly before the sink is opened.
func Run(cfg Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := ResolvePaths(cfg.Paths, os.Stdin, stdinIsTerminal, cfg.NullSeparator)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Warn("No input paths provided as arguments or via stdin")
		return nil
	}

	extra := ignore.NewPatternSet(logger)
	extra.Compile(cfg.IgnorePatterns...)

	sink, err := NewSink(cfg.OutputFile)
	if err != nil {
		return err
	}

	err = process(cfg, paths, extra, sink, logger)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to flush output: %w", cerr)
	}
	return err
}

// process walks the roots and writes every rendered document to the sink.
// It is separated from Run so tests can feed an in-memory writer.
func process(cfg Config, paths []string, extra *ignore.PatternSet, sink io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	formatter := NewFormatter(cfg.Format, cfg.LineNumbers, NewSequencer())
	filter := NewEntryFilter(cfg, logger)
	walker := NewWalker(cfg, extra, logger)

	if err := formatter.Begin(sink); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	err := walker.Walk(paths, func(entry FileEntry) error {
		if !filter.Keep(entry) {
			return nil
		}
		content, ok := readTextFile(entry.Path, logger)
		if !ok {
			return nil
		}
		if err := formatter.RenderDocument(sink, Document{Path: entry.Path, Content: content}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := formatter.End(sink); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readTextFile loads a file's content, skipping the file with a warning when
// it cannot be read or is not valid UTF-8.
func readTextFile(path string, logger *zap.Logger) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Skipping file: read error", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if !utf8.Valid(data) {
		logger.Warn("Skipping file: not valid UTF-8", zap.String("path", path))
		return "", false
	}
	return string(data), true
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
