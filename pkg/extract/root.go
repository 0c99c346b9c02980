package extract

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

const (
	rootBody     = "body"
	rootDocument = "document"
)

var bodySelector = cascadia.MustCompile("body")

// SelectRoot picks the extraction root: the first element matched by the
// first selector in the priority list that matches anything. The document body
// is the final fallback; a document without a body falls back to doc itself.
// The second return value names the selector that won.
// Selectors that fail to compile are skipped.
func SelectRoot(doc *html.Node, selectors []string) (*html.Node, string) {
	return selectRoot(doc, selectors, nil)
}

func selectRoot(doc *html.Node, selectors []string, onInvalid func(selector string, err error)) (*html.Node, string) {
	if doc == nil {
		return nil, ""
	}

	for _, selector := range selectors {
		m, err := cascadia.Compile(selector)
		if err != nil {
			if onInvalid != nil {
				onInvalid(selector, err)
			}
			continue
		}
		if n := m.MatchFirst(doc); n != nil {
			return n, selector
		}
	}

	if body := findBody(doc); body != nil {
		return body, rootBody
	}
	return doc, rootDocument
}

func findBody(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	return bodySelector.MatchFirst(doc)
}
