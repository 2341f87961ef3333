package concat

import (
	"path/filepath"
	"strings"
)

// languageTags maps file extensions to the language tag used on Markdown
// code fences. Unknown extensions render an untagged fence.
var languageTags = map[string]string{
	"py":    "python",
	"rs":    "rust",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"hpp":   "cpp",
	"java":  "java",
	"js":    "javascript",
	"ts":    "typescript",
	"html":  "html",
	"css":   "css",
	"xml":   "xml",
	"json":  "json",
	"yaml":  "yaml",
	"yml":   "yaml",
	"sh":    "bash",
	"rb":    "ruby",
	"md":    "markdown",
	"toml":  "toml",
	"go":    "go",
	"php":   "php",
	"swift": "swift",
	"kt":    "kotlin",
	"sql":   "sql",
}

// languageTag returns the Markdown fence tag for a file path, or "" when the
// extension is unknown or absent.
func languageTag(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return languageTags[strings.ToLower(ext)]
}
