package converter

import (
	"fmt"
	"strings"
)

// Chain applies multiple converters in sequence, each receiving the
// previous output.
type Chain struct {
	converters []Converter
}

// NewChain creates a converter that applies converters in the order given.
//
// Example:
//
//	chain := converter.NewChain(
//	    converter.NewReadability(&converter.ReadabilityConfig{RawHTML: true}),
//	    converter.NewMarkdown(),
//	)
func NewChain(converters ...Converter) *Chain {
	return &Chain{
		converters: converters,
	}
}

// Convert applies all converters in sequence.
func (c *Chain) Convert(content string) (string, error) {
	var err error
	for _, conv := range c.converters {
		content, err = conv.Convert(content)
		if err != nil {
			return "", fmt.Errorf("%s: %w", conv.Name(), err)
		}
	}
	return content, nil
}

// Name returns the names of all chained converters.
func (c *Chain) Name() string {
	names := make([]string, len(c.converters))
	for i, conv := range c.converters {
		names[i] = conv.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
