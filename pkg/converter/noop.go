package converter

// Noop passes content through without modification. In comparisons it
// stands for the raw input.
type Noop struct{}

// NewNoop creates a new no-op converter.
func NewNoop() *Noop {
	return &Noop{}
}

// Convert returns the input unchanged.
func (c *Noop) Convert(html string) (string, error) {
	return html, nil
}

// Name returns the converter type.
func (c *Noop) Name() string {
	return EngineNoop
}
