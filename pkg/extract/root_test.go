package extract

import (
	"testing"

	"golang.org/x/net/html"
)

func TestSelectRoot(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantLabel string
		wantID    string
	}{
		{
			name:      "entry-content wins over main",
			html:      `<main id="m"><div class="entry-content" id="e">x</div></main>`,
			wantLabel: ".entry-content",
			wantID:    "e",
		},
		{
			name:      "article inside main wins over main",
			html:      `<article id="a1">outside</article><main id="m"><article id="a2">inside</article></main>`,
			wantLabel: "main article",
			wantID:    "a2",
		},
		{
			name:      "main before article",
			html:      `<article id="a">x</article><main id="m">y</main>`,
			wantLabel: "main",
			wantID:    "m",
		},
		{
			name:      "role main",
			html:      `<div role="main" id="r">x</div><div class="content" id="c">y</div>`,
			wantLabel: `[role="main"]`,
			wantID:    "r",
		},
		{
			name:      "first match in document order",
			html:      `<div class="content" id="c1">x</div><div class="content" id="c2">y</div>`,
			wantLabel: ".content",
			wantID:    "c1",
		},
		{
			name:      "data attribute",
			html:      `<div data-main-content id="d">x</div><div id="main">y</div>`,
			wantLabel: "[data-main-content]",
			wantID:    "d",
		},
		{
			name:      "id selectors come last",
			html:      `<div id="main-content">x</div>`,
			wantLabel: "#main-content",
			wantID:    "main-content",
		},
		{
			name:      "body fallback",
			html:      `<div id="x">nothing matches</div>`,
			wantLabel: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			root, label := SelectRoot(doc.Nodes[0], DefaultConfig().RootSelectors)
			if label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, label)
			}
			if root == nil {
				t.Fatal("expected a root")
			}
			if tt.wantID == "" {
				if root.Data != "body" {
					t.Errorf("expected body, got %s", root.Data)
				}
				return
			}
			if id := attr(root, "id"); id != tt.wantID {
				t.Errorf("expected root id %q, got %q", tt.wantID, id)
			}
		})
	}
}

func TestSelectRootInvalidSelector(t *testing.T) {
	doc := parseDoc(t, `<main id="m">x</main>`)

	var invalid []string
	root, label := selectRoot(doc.Nodes[0], []string{"[[broken", "main"}, func(selector string, _ error) {
		invalid = append(invalid, selector)
	})
	if label != "main" || attr(root, "id") != "m" {
		t.Errorf("expected main root, got %q", label)
	}
	if len(invalid) != 1 || invalid[0] != "[[broken" {
		t.Errorf("expected broken selector to be reported, got %v", invalid)
	}
}

func TestSelectRootWithoutBody(t *testing.T) {
	div := &html.Node{Type: html.ElementNode, Data: "div"}
	div.AppendChild(&html.Node{Type: html.TextNode, Data: "fragment"})

	root, label := SelectRoot(div, DefaultConfig().RootSelectors)
	if root != div || label != "document" {
		t.Errorf("expected detached element as root, got %v %q", root, label)
	}

	if root, label := SelectRoot(nil, nil); root != nil || label != "" {
		t.Errorf("expected nil root for nil document, got %v %q", root, label)
	}
}
