package converter

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	mdconverter "github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/jmylchreest/mdextract/pkg/extract"
)

// Markdown converts the whole document with html-to-markdown. It keeps
// every part of the page and serves as the baseline the extractor is
// compared against.
type Markdown struct {
	domain string
}

// MarkdownOption configures the markdown converter.
type MarkdownOption func(*Markdown)

// WithDomain resolves relative link and image URLs against domain.
func WithDomain(domain string) MarkdownOption {
	return func(m *Markdown) {
		m.domain = domain
	}
}

// NewMarkdown creates a new html-to-markdown converter.
func NewMarkdown(opts ...MarkdownOption) *Markdown {
	m := &Markdown{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Convert converts HTML to Markdown and normalizes blank lines and spaces
// the same way the extractor does.
func (m *Markdown) Convert(html string) (string, error) {
	var opts []mdconverter.ConvertOptionFunc
	if m.domain != "" {
		opts = append(opts, mdconverter.WithDomain(m.domain))
	}

	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}
	return extract.PostProcess(markdown), nil
}

// Name returns the converter type.
func (m *Markdown) Name() string {
	return EngineMarkdown
}
