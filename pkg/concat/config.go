package concat

// Format selects one of the three output grammars.
type Format int

const (
	// FormatDefault renders each file as path, "---", content, "---".
	FormatDefault Format = iota
	// FormatMarkdown renders each file as a fenced code block.
	FormatMarkdown
	// FormatCXML renders each file as an indexed <document> element inside a
	// <documents> envelope.
	FormatCXML
)

// Config holds the settings for one concatenation run. It is built once from
// the command line and never mutated afterwards.
type Config struct {
	Paths              []string // Root files or directories to process; stdin is read when empty.
	Extensions         []string // Allowed file extensions; empty allows all.
	IncludeHidden      bool     // Include paths whose base name starts with '.'.
	RespectGitignore   bool     // Consult .gitignore files, the global user ignore file, and .git/info/exclude.
	RespectIgnoreFiles bool     // Consult plain .ignore files.
	IgnorePatterns     []string // Always-applied gitignore-syntax patterns.
	IgnoreFilesOnly    bool     // IgnorePatterns additionally match bare file names only.
	Format             Format   // The output grammar.
	LineNumbers        bool     // Prefix content lines with 1-based line numbers.
	OutputFile         string   // Destination file; stdout when empty.
	NullSeparator      bool     // Split stdin paths on NUL instead of newline.
}
