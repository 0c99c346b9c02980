package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// exclusionRule decides whether an element and its whole subtree are chrome.
type exclusionRule struct {
	name  string
	match func(r *renderer, n *html.Node) bool
}

// exclusionRules are evaluated in order; the first match wins. Cheap
// tag/class/id checks come first, the layout-dependent rule last.
var exclusionRules = []exclusionRule{
	{"tag", func(r *renderer, n *html.Node) bool {
		return r.excludedTags[strings.ToLower(n.Data)]
	}},
	{"class", func(r *renderer, n *html.Node) bool {
		class := attr(n, "class")
		if class == "" {
			return false
		}
		for _, p := range r.cfg.ChromeClassPatterns {
			if strings.Contains(class, p) {
				return true
			}
		}
		return false
	}},
	{"id", func(r *renderer, n *html.Node) bool {
		id := attr(n, "id")
		return id != "" && r.chromeIDs[id]
	}},
	{"role-banner", func(r *renderer, n *html.Node) bool {
		if attr(n, "role") != "banner" {
			return false
		}
		return hasDescendant(n, "nav") || (r.body != nil && n.Parent == r.body)
	}},
	{"role-navigation", func(r *renderer, n *html.Node) bool {
		return attr(n, "role") == "navigation"
	}},
	{"role-complementary", func(r *renderer, n *html.Node) bool {
		ratio := r.cfg.ComplementaryWidthRatio
		if ratio <= 0 || attr(n, "role") != "complementary" || n.Parent == nil {
			return false
		}
		parentWidth := r.layout.Width(n.Parent)
		return parentWidth > 0 && r.layout.Width(n) < parentWidth*ratio
	}},
}

// exclusion returns the name of the first rule that excludes n.
func (r *renderer) exclusion(n *html.Node) (string, bool) {
	for _, rule := range exclusionRules {
		if rule.match(r, n) {
			return rule.name, true
		}
	}
	return "", false
}

// whitespaceRun matches whitespace including vertical tab, non-breaking and
// other Unicode spaces. RE2's \s omits \v.
var whitespaceRun = regexp.MustCompile(`[\s\x0B\p{Z}\x{FEFF}]+`)

// collapseText replaces each whitespace run with one space. It does not trim.
func collapseText(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasDescendant(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return true
		}
		if hasDescendant(c, tag) {
			return true
		}
	}
	return false
}
