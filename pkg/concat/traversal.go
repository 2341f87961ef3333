package concat

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"

	"promptcat/pkg/ignore"
)

// FileEntry is a filesystem path discovered during traversal together with
// its directory-entry metadata. Only regular files ever become documents;
// everything else is dropped on the way to the formatter.
type FileEntry struct {
	Path  string
	Entry fs.DirEntry
}

// Walker produces the stream of candidate file entries across all roots,
// honoring hidden-path pruning, the version-control ignore sources, and the
// always-applied command-line ignore patterns.
type Walker struct {
	cfg    Config
	extra  *ignore.PatternSet
	logger *zap.Logger
}

// NewWalker returns a Walker for the given configuration. The extra pattern
// set is applied on every walk regardless of the gitignore switches.
func NewWalker(cfg Config, extra *ignore.PatternSet, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{cfg: cfg, extra: extra, logger: logger}
}

// Walk visits every root in order, calling fn once per surviving file entry.
// A root that is itself a file is emitted as exactly one entry. Errors
// returned by fn abort the walk; errors on individual entries are logged and
// the walk continues.
func (w *Walker) Walk(roots []string, fn func(FileEntry) error) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			w.logger.Warn("Cannot access root path", zap.String("path", root), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			if err := fn(FileEntry{Path: root, Entry: fs.FileInfoToDirEntry(info)}); err != nil {
				return err
			}
			continue
		}
		if err := w.walkRoot(root, fn); err != nil {
			return err
		}
	}
	return nil
}

// scopedMatcher is an ignore-file matcher together with the directory whose
// subtree it governs.
type scopedMatcher struct {
	base    string
	matcher gitignore.IgnoreMatcher
}

func (w *Walker) walkRoot(root string, fn func(FileEntry) error) error {
	matchers := w.rootMatchers(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error during directory walk", zap.String("path", path), zap.Error(err))
			return nil
		}

		if path == root {
			matchers = append(matchers, w.dirMatchers(path)...)
			return nil
		}

		isDir := d.IsDir()

		if !w.cfg.IncludeHidden && isHidden(d.Name()) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if ignoredBy(matchers, path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if matched, pattern := w.extra.MatchesWithPattern(filepath.ToSlash(rel)); matched {
			w.logger.Debug("Path excluded by ignore pattern",
				zap.String("path", path),
				zap.String("pattern", pattern.Line))
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			matchers = append(matchers, w.dirMatchers(path)...)
			return nil
		}
		return fn(FileEntry{Path: path, Entry: d})
	})
}

// rootMatchers loads the ignore sources that apply to a whole root: the
// global user ignore file and the repository exclude file.
func (w *Walker) rootMatchers(root string) []scopedMatcher {
	if !w.cfg.RespectGitignore {
		return nil
	}

	var matchers []scopedMatcher

	if p := globalIgnorePath(); p != "" {
		if m, err := gitignore.NewGitIgnore(p, root); err == nil {
			matchers = append(matchers, scopedMatcher{base: root, matcher: m})
		}
	}

	exclude := filepath.Join(root, ".git", "info", "exclude")
	if _, err := os.Stat(exclude); err == nil {
		m, err := gitignore.NewGitIgnore(exclude, root)
		if err != nil {
			w.logger.Warn("Could not parse repository exclude file", zap.String("path", exclude), zap.Error(err))
		} else {
			matchers = append(matchers, scopedMatcher{base: root, matcher: m})
		}
	}

	return matchers
}

// dirMatchers loads the per-directory ignore files present in dir.
func (w *Walker) dirMatchers(dir string) []scopedMatcher {
	var names []string
	if w.cfg.RespectGitignore {
		names = append(names, ".gitignore")
	}
	if w.cfg.RespectIgnoreFiles {
		names = append(names, ".ignore")
	}

	var matchers []scopedMatcher
	for _, name := range names {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		m, err := gitignore.NewGitIgnore(p)
		if err != nil {
			w.logger.Warn("Could not parse ignore file", zap.String("path", p), zap.Error(err))
			continue
		}
		matchers = append(matchers, scopedMatcher{base: dir, matcher: m})
	}
	return matchers
}

// ignoredBy checks the matcher stack closest-first. A matcher only governs
// paths inside its own directory, so matchers left over from sibling
// subtrees are inert.
func ignoredBy(matchers []scopedMatcher, path string, isDir bool) bool {
	for i := len(matchers) - 1; i >= 0; i-- {
		m := matchers[i]
		if !withinBase(m.base, path) {
			continue
		}
		if m.matcher.Match(path, isDir) {
			return true
		}
	}
	return false
}

func withinBase(base, path string) bool {
	return path == base || strings.HasPrefix(path, base+string(os.PathSeparator))
}

// globalIgnorePath returns the user-level git ignore file, if one exists.
func globalIgnorePath() string {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "git", "ignore"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "git", "ignore"),
			filepath.Join(home, ".gitignore_global"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// isHidden checks if a path component is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
