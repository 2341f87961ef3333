// Package ignore compiles gitignore-syntax patterns into matchers. It backs
// the always-applied command-line ignore layer, which is consulted even when
// the version-control ignore sources are switched off.
package ignore

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled regular expression pattern, a negation
// flag, and the original pattern text.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Indicates if the pattern is a negation (starts with '!').
	Line   string         // Original pattern text.
}

// PatternSet holds an ordered collection of ignore patterns. Later patterns
// override earlier ones, so a negated pattern can re-include a path that an
// earlier pattern excluded.
type PatternSet struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewPatternSet initializes a PatternSet with an optional logger.
func NewPatternSet(logger *zap.Logger) *PatternSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternSet{logger: logger}
}

// Compile parses pattern lines and adds them to the set. Empty lines and
// comments are skipped; an unparsable pattern is reported and dropped.
func (s *PatternSet) Compile(lines ...string) {
	for _, line := range lines {
		pattern, negate := parsePatternLine(line, s.logger)
		if pattern == nil {
			continue
		}
		s.patterns = append(s.patterns, &Pattern{
			Regexp: pattern,
			Negate: negate,
			Line:   line,
		})
		s.logger.Debug("Compiled ignore pattern",
			zap.String("pattern", line),
			zap.Bool("negate", negate))
	}
}

// Len returns the number of compiled patterns in the set.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// Matches checks if the given slash-separated path matches any pattern.
func (s *PatternSet) Matches(path string) bool {
	matches, _ := s.MatchesWithPattern(path)
	return matches
}

// MatchesWithPattern checks if the given path matches any pattern and
// returns the pattern that decided the outcome.
func (s *PatternSet) MatchesWithPattern(path string) (bool, *Pattern) {
	normalized := strings.ReplaceAll(path, "\\", "/")

	matched := false
	var matchedPattern *Pattern

	for _, pattern := range s.patterns {
		if pattern.Regexp.MatchString(normalized) {
			matchedPattern = pattern
			if pattern.Negate {
				matched = false
			} else {
				matched = true
			}
		}
	}

	return matched, matchedPattern
}

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern      = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern    = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern     = regexp.MustCompile(`^\*\*/`)
	singleStarReplacementPattern = regexp.MustCompile(`\*`)
	directoryEndPattern          = regexp.MustCompile(`/$`)
	rootRelativePattern          = regexp.MustCompile(`^/`)
)

// parsePatternLine processes a single pattern line and returns a compiled
// regular expression and a negation flag. Returns nil for comments, empty
// lines, and patterns that do not compile.
func parsePatternLine(line string, logger *zap.Logger) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	// Handle negation.
	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Handle escaped leading '#' and '!'.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	escapedLine := escapeSpecialChars(trimmedLine)
	escapedLine = tokenizeDoubleStars(escapedLine)
	regexPattern := wildcardToRegex(escapedLine)
	regexPattern = expandDoubleStars(regexPattern)
	regexPattern = anchorPattern(regexPattern, trimmedLine)

	compiledRegex, err := regexp.Compile(regexPattern)
	if err != nil {
		logger.Warn("Invalid ignore pattern",
			zap.String("pattern", line),
			zap.Error(err))
		return nil, false
	}

	return compiledRegex, negate
}

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	specialChars := `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// Placeholder bytes for '**' constructs. They hold the slot through the
// single-wildcard conversion, which must not rewrite the regex they expand to.
const (
	doubleStarMiddleToken   = "\x00"
	doubleStarTrailingToken = "\x01"
	doubleStarLeadingToken  = "\x02"
)

// tokenizeDoubleStars replaces '**' constructs with placeholder bytes.
func tokenizeDoubleStars(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, doubleStarMiddleToken)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, doubleStarTrailingToken)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, doubleStarLeadingToken)
	return pattern
}

// expandDoubleStars substitutes the placeholder bytes with their regex forms.
func expandDoubleStars(pattern string) string {
	pattern = strings.ReplaceAll(pattern, doubleStarMiddleToken, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, doubleStarTrailingToken, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, doubleStarLeadingToken, `(.*/)?`)
	return pattern
}

// wildcardToRegex converts wildcard patterns '*' and '?' to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStarReplacementPattern.ReplaceAllString(pattern, `[^/]*`)
	return strings.ReplaceAll(pattern, "?", ".")
}

// anchorPattern anchors the regex pattern to match the entire path.
func anchorPattern(pattern string, originalPattern string) string {
	if directoryEndPattern.MatchString(originalPattern) {
		pattern += `(|.*)$`
	} else {
		pattern += `(|/.*)$`
	}

	if rootRelativePattern.MatchString(originalPattern) {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return `^(|.*/)` + pattern
}
