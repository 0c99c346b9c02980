package extract

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Layout reports the rendered width of an element. A width of 0 means unknown.
//
// Static HTML carries no layout, so the default StyleLayout only reads declared
// widths. Hosts that render pages (a headless browser) should supply measured
// widths through their own Layout.
type Layout interface {
	Width(n *html.Node) float64
}

// LayoutFunc adapts a function to the Layout interface.
type LayoutFunc func(n *html.Node) float64

// Width calls f(n).
func (f LayoutFunc) Width(n *html.Node) float64 {
	if n == nil {
		return 0
	}
	return f(n)
}

// StyleLayout derives widths from markup: the inline style width (px or a
// percentage of the parent), then the width attribute, then data-width.
type StyleLayout struct{}

// Width returns the declared width of n, or 0.
func (StyleLayout) Width(n *html.Node) float64 {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}

	if style := attr(n, "style"); style != "" {
		if w, ok := styleWidth(n, style); ok {
			return w
		}
	}
	for _, key := range []string{"width", "data-width"} {
		if v := attr(n, key); v != "" {
			if w, ok := parseLength(n, v); ok {
				return w
			}
		}
	}
	return 0
}

func styleWidth(n *html.Node, style string) (float64, bool) {
	// douceur drops the value of an unterminated last declaration.
	style = strings.TrimSpace(style)
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return 0, false
	}
	// Later declarations win, as in the cascade. An unusable width falls back
	// to the previous one.
	for i := len(decls) - 1; i >= 0; i-- {
		if !strings.EqualFold(strings.TrimSpace(decls[i].Property), "width") {
			continue
		}
		if w, ok := parseLength(n, decls[i].Value); ok {
			return w, true
		}
	}
	return 0, false
}

// parseLength understands unitless numbers, px and percentages of the parent.
func parseLength(n *html.Node, v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case strings.HasSuffix(v, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "%")), 64)
		if err != nil || n.Parent == nil {
			return 0, false
		}
		parent := StyleLayout{}.Width(n.Parent)
		if parent <= 0 {
			return 0, false
		}
		return parent * pct / 100, true
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSpace(strings.TrimSuffix(v, "px"))
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
