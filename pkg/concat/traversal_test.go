package concat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcat/pkg/ignore"
)

// isolateHome keeps the walker from picking up the developer's real global
// git ignore configuration.
func isolateHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func walkPaths(t *testing.T, cfg Config, patterns []string, roots ...string) []string {
	t.Helper()
	extra := ignore.NewPatternSet(nil)
	extra.Compile(patterns...)
	w := NewWalker(cfg, extra, nil)

	var got []string
	require.NoError(t, w.Walk(roots, func(e FileEntry) error {
		got = append(got, e.Path)
		return nil
	}))
	return got
}

func defaultCfg() Config {
	return Config{RespectGitignore: true, RespectIgnoreFiles: true}
}

func TestWalkPrunesHiddenPaths(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "[core]")
	writeFile(t, filepath.Join(root, ".env"), "SECRET=1")
	visible := writeFile(t, filepath.Join(root, "visible.txt"), "v")

	got := walkPaths(t, defaultCfg(), nil, root)
	assert.Equal(t, []string{visible}, got)
}

func TestWalkIncludeHidden(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	hidden := writeFile(t, filepath.Join(root, ".env"), "SECRET=1")
	visible := writeFile(t, filepath.Join(root, "visible.txt"), "v")

	cfg := defaultCfg()
	cfg.IncludeHidden = true
	got := walkPaths(t, cfg, nil, root)
	assert.ElementsMatch(t, []string{hidden, visible}, got)
}

func TestWalkRespectsGitignore(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	keep := writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.log"), "b")

	got := walkPaths(t, defaultCfg(), nil, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkIgnoreGitignoreDisablesAllSources(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, ".ignore"), "*.txt\n")
	a := writeFile(t, filepath.Join(root, "a.txt"), "a")
	b := writeFile(t, filepath.Join(root, "b.log"), "b")

	cfg := Config{RespectGitignore: false, RespectIgnoreFiles: false}
	got := walkPaths(t, cfg, nil, root)
	assert.ElementsMatch(t, []string{a, b}, got)
}

func TestWalkNestedGitignoreScopesToItsDirectory(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "secret.txt\n")
	topSecret := writeFile(t, filepath.Join(root, "secret.txt"), "top")
	writeFile(t, filepath.Join(root, "sub", "secret.txt"), "nested")
	other := writeFile(t, filepath.Join(root, "sub", "other.txt"), "o")

	got := walkPaths(t, defaultCfg(), nil, root)
	assert.ElementsMatch(t, []string{topSecret, other}, got)
}

func TestWalkPlainIgnoreFile(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".ignore"), "*.md\n")
	keep := writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "README.md"), "# hi")

	got := walkPaths(t, defaultCfg(), nil, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkRepositoryExcludeFile(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "info", "exclude"), "*.tmp\n")
	keep := writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "scratch.tmp"), "x")

	got := walkPaths(t, defaultCfg(), nil, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkExtraPatternsAlwaysApply(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	keep := writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "README.md"), "# hi")

	// Even with every gitignore source disabled.
	cfg := Config{RespectGitignore: false, RespectIgnoreFiles: false}
	got := walkPaths(t, cfg, []string{"*.md"}, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkExtraPatternNegation(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "debug.log"), "d")
	keep := writeFile(t, filepath.Join(root, "keep.log"), "k")

	got := walkPaths(t, defaultCfg(), []string{"*.log", "!keep.log"}, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkExtraPatternPrunesDirectories(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	keep := writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "vendor", "lib.go"), "package lib")

	got := walkPaths(t, defaultCfg(), []string{"vendor"}, root)
	assert.Equal(t, []string{keep}, got)
}

func TestWalkSingleFileRoot(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	file := writeFile(t, filepath.Join(root, "only.txt"), "x")

	got := walkPaths(t, defaultCfg(), nil, file)
	assert.Equal(t, []string{file}, got)
}

func TestWalkMultipleRootsInOrder(t *testing.T) {
	isolateHome(t)
	root1 := t.TempDir()
	root2 := t.TempDir()
	b := writeFile(t, filepath.Join(root1, "b.txt"), "b")
	a := writeFile(t, filepath.Join(root2, "a.txt"), "a")

	got := walkPaths(t, defaultCfg(), nil, root1, root2)
	assert.Equal(t, []string{b, a}, got)
}

func TestWalkMissingRootWarnsAndContinues(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	keep := writeFile(t, filepath.Join(root, "a.txt"), "a")

	got := walkPaths(t, defaultCfg(), nil, filepath.Join(root, "gone"), root)
	assert.Equal(t, []string{keep}, got)
}
