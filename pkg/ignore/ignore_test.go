package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileSkipsCommentsAndBlanks(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("", "   ", "# comment", "*.log")

	assert.Equal(t, 1, s.Len())
}

func TestWildcardPattern(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("*.log")

	assert.True(t, s.Matches("debug.log"))
	assert.True(t, s.Matches("sub/dir/debug.log"))
	assert.False(t, s.Matches("debug.logx"))
	assert.False(t, s.Matches("log"))
}

func TestNegationReincludesPath(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("*.log", "!keep.log")

	assert.True(t, s.Matches("debug.log"))
	assert.False(t, s.Matches("keep.log"))
	assert.False(t, s.Matches("sub/keep.log"))
}

func TestDirectoryPatternMatchesContents(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("dist/")

	assert.True(t, s.Matches("dist/bundle.js"))
	assert.True(t, s.Matches("web/dist/bundle.js"))
	assert.False(t, s.Matches("distant/bundle.js"))
}

func TestDoubleStarPatterns(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("**/node_modules")

	assert.True(t, s.Matches("node_modules"))
	assert.True(t, s.Matches("a/b/node_modules"))
	assert.True(t, s.Matches("a/node_modules/pkg/index.js"))
	assert.False(t, s.Matches("node_modules_backup"))
}

func TestDoubleStarTrailing(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("logs/**")

	assert.True(t, s.Matches("logs/debug.txt"))
	assert.True(t, s.Matches("logs/2024/01/debug.txt"))
	assert.False(t, s.Matches("logsx/debug.txt"))
}

func TestDoubleStarMiddle(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("a/**/b")

	assert.True(t, s.Matches("a/b"))
	assert.True(t, s.Matches("a/x/y/b"))
	assert.False(t, s.Matches("ab"))
}

func TestQuestionMarkWildcard(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("file?.txt")

	assert.True(t, s.Matches("file1.txt"))
	assert.False(t, s.Matches("file.txt"))
}

func TestBarePathMatch(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("secrets.txt")

	assert.True(t, s.Matches("secrets.txt"))
	assert.True(t, s.Matches("deep/nested/secrets.txt"))
	assert.True(t, s.Matches("secrets.txt/inner"))
	assert.False(t, s.Matches("my-secrets.txt"))
}

func TestBackslashPathsAreNormalized(t *testing.T) {
	s := NewPatternSet(nil)
	s.Compile("build/*.o")

	assert.True(t, s.Matches(`build\main.o`))
}
