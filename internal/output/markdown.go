package output

import (
	"bufio"
	"io"
)

// documentSeparator separates documents when several inputs are converted
// into one Markdown stream.
const documentSeparator = "\n---\n\n"

// MarkdownWriter writes the converted content only.
type MarkdownWriter struct {
	w       *bufio.Writer
	written int
}

// NewMarkdownWriter creates a Markdown writer.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{w: bufio.NewWriter(w)}
}

// Write writes the report content followed by a newline.
func (w *MarkdownWriter) Write(r Report) error {
	if w.written > 0 {
		if _, err := w.w.WriteString(documentSeparator); err != nil {
			return err
		}
	}
	w.written++

	if r.Content == "" {
		return nil
	}
	if _, err := w.w.WriteString(r.Content); err != nil {
		return err
	}
	_, err := w.w.WriteString("\n")
	return err
}

// Close flushes the writer.
func (w *MarkdownWriter) Close() error {
	return w.w.Flush()
}
