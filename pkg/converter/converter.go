// Package converter provides a common interface over the HTML to Markdown
// engines shipped with mdextract, so the CLI can run and compare them.
package converter

import (
	"fmt"
	"sort"

	"github.com/jmylchreest/mdextract/pkg/extract"
)

// Converter transforms an HTML document into Markdown.
type Converter interface {
	// Convert transforms the input HTML into Markdown.
	Convert(html string) (string, error)

	// Name returns the converter type for logging/debugging.
	Name() string
}

var _ Converter = (*extract.Extractor)(nil)

// Engine names accepted by New.
const (
	EngineExtract     = "extract"
	EngineReadability = "readability"
	EngineMarkdown    = "html-to-markdown"
	EngineNoop        = "noop"

	// EngineReadabilityMarkdown isolates the article with readability and
	// converts it with html-to-markdown instead of the extractor's renderer.
	EngineReadabilityMarkdown = "readability+html-to-markdown"
)

var factories = map[string]func(cfg *extract.Config) Converter{
	EngineExtract: func(cfg *extract.Config) Converter {
		return extract.New(cfg)
	},
	EngineReadability: func(cfg *extract.Config) Converter {
		return NewReadability(&ReadabilityConfig{Extract: cfg})
	},
	EngineMarkdown: func(*extract.Config) Converter {
		return NewMarkdown()
	},
	EngineReadabilityMarkdown: func(*extract.Config) Converter {
		return NewChain(NewReadability(&ReadabilityConfig{RawHTML: true}), NewMarkdown())
	},
	EngineNoop: func(*extract.Config) Converter {
		return NewNoop()
	},
}

// New returns the named engine. cfg configures the engines built on the
// extractor and may be nil for the default rule set.
func New(name string, cfg *extract.Config) (Converter, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, Names())
	}
	return factory(cfg), nil
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
