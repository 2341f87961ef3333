package concat

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is one file ready to be rendered: its path as discovered and its
// full decoded text content.
type Document struct {
	Path    string
	Content string
}

// Formatter renders documents into one of the output grammars. Begin and End
// wrap the whole run; only the CXML formatter emits an envelope.
type Formatter interface {
	Begin(w io.Writer) error
	RenderDocument(w io.Writer, doc Document) error
	End(w io.Writer) error
}

// NewFormatter returns the formatter for the configured format. The CXML
// formatter owns the sequencer; the other formats never consume an index.
func NewFormatter(format Format, lineNumbers bool, seq *Sequencer) Formatter {
	switch format {
	case FormatCXML:
		return &cxmlFormatter{lineNumbers: lineNumbers, seq: seq}
	case FormatMarkdown:
		return &markdownFormatter{lineNumbers: lineNumbers}
	default:
		return &defaultFormatter{lineNumbers: lineNumbers}
	}
}

// DisplayPath strips a leading current-directory prefix from a path; other
// paths, absolute or relative, are shown as given.
func DisplayPath(path string) string {
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, `.\`) {
		return path[2:]
	}
	return path
}

// AddLineNumbers prefixes every line of content with its 1-based index,
// right-justified to the digit width of the total line count (minimum 1),
// followed by two spaces.
func AddLineNumbers(content string) string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	width := 1
	if len(lines) > 0 {
		width = len(strconv.Itoa(len(lines)))
	}

	numbered := make([]string, len(lines))
	for i, line := range lines {
		numbered[i] = fmt.Sprintf("%*d  %s", width, i+1, line)
	}
	return strings.Join(numbered, "\n")
}

// writeBlock writes content so that it ends with exactly one newline.
func writeBlock(w io.Writer, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w, content)
	return err
}

type defaultFormatter struct {
	lineNumbers bool
}

func (f *defaultFormatter) Begin(io.Writer) error { return nil }
func (f *defaultFormatter) End(io.Writer) error   { return nil }

func (f *defaultFormatter) RenderDocument(w io.Writer, doc Document) error {
	content := doc.Content
	if f.lineNumbers {
		content = AddLineNumbers(content)
	}
	if _, err := fmt.Fprintf(w, "%s\n---\n", DisplayPath(doc.Path)); err != nil {
		return err
	}
	if err := writeBlock(w, content); err != nil {
		return err
	}
	_, err := io.WriteString(w, "---\n\n")
	return err
}

type markdownFormatter struct {
	lineNumbers bool
}

func (f *markdownFormatter) Begin(io.Writer) error { return nil }
func (f *markdownFormatter) End(io.Writer) error   { return nil }

func (f *markdownFormatter) RenderDocument(w io.Writer, doc Document) error {
	content := doc.Content
	if f.lineNumbers {
		content = AddLineNumbers(content)
	}

	// Grow the fence until it cannot collide with a backtick run inside the
	// content.
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}

	if _, err := fmt.Fprintf(w, "%s\n%s%s\n", DisplayPath(doc.Path), fence, languageTag(doc.Path)); err != nil {
		return err
	}
	if err := writeBlock(w, content); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n\n", fence)
	return err
}

// cxmlEscaper escapes the three reserved characters in a single pass, so an
// ampersand introduced by an earlier substitution is never escaped twice.
var cxmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type cxmlFormatter struct {
	lineNumbers bool
	seq         *Sequencer
}

func (f *cxmlFormatter) Begin(w io.Writer) error {
	_, err := io.WriteString(w, "<documents>\n")
	return err
}

func (f *cxmlFormatter) End(w io.Writer) error {
	_, err := io.WriteString(w, "</documents>\n")
	return err
}

func (f *cxmlFormatter) RenderDocument(w io.Writer, doc Document) error {
	content := doc.Content
	if f.lineNumbers {
		content = AddLineNumbers(content)
	}

	index := f.seq.Next()
	if _, err := fmt.Fprintf(w, "<document index=\"%d\">\n<source>%s</source>\n<document_content>\n",
		index, DisplayPath(doc.Path)); err != nil {
		return err
	}
	if err := writeBlock(w, cxmlEscaper.Replace(content)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</document_content>\n</document>\n")
	return err
}
