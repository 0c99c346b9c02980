// Package output writes conversion reports in the CLI's output formats.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/mdextract/pkg/extract"
)

// Format represents output format types.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatJSONL, FormatYAML}

// Report is the outcome of converting one input document.
type Report struct {
	Source   string            `json:"source" yaml:"source"`
	Engine   string            `json:"engine" yaml:"engine"`
	Content  string            `json:"content" yaml:"content"`
	Stats    *extract.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []extract.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReport builds a report from an extraction result.
func NewReport(source, engine string, result *extract.Result) Report {
	return Report{
		Source:   source,
		Engine:   engine,
		Content:  result.Content,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	}
}

// Writer serializes reports.
type Writer interface {
	// Write outputs a single report. Buffered formats emit on Close.
	Write(r Report) error

	// Close flushes pending output.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing for JSON.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
