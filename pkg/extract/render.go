package extract

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// renderer walks one document. It is created per extraction and never shared.
type renderer struct {
	cfg    *Config
	layout Layout
	body   *html.Node
	stats  *Stats

	excludedTags map[string]bool
	chromeIDs    map[string]bool
}

func newRenderer(cfg *Config, layout Layout, body *html.Node, stats *Stats) *renderer {
	if layout == nil {
		layout = StyleLayout{}
	}
	if stats == nil {
		stats = NewStats()
	}
	r := &renderer{
		cfg:          cfg,
		layout:       layout,
		body:         body,
		stats:        stats,
		excludedTags: make(map[string]bool, len(cfg.ExcludedTags)),
		chromeIDs:    make(map[string]bool, len(cfg.ChromeIDs)),
	}
	for _, tag := range cfg.ExcludedTags {
		r.excludedTags[strings.ToLower(tag)] = true
	}
	for _, id := range cfg.ChromeIDs {
		r.chromeIDs[id] = true
	}
	return r
}

// render returns the Markdown contribution of n, before post-processing.
func (r *renderer) render(n *html.Node) string {
	if n == nil {
		return ""
	}

	switch n.Type {
	case html.TextNode:
		return collapseText(n.Data)
	case html.DocumentNode:
		return r.children(n)
	case html.ElementNode:
	default:
		return ""
	}

	r.stats.ElementsVisited++
	if rule, ok := r.exclusion(n); ok {
		r.stats.RecordExclusion(rule, n.Data)
		return ""
	}

	return r.element(n, strategyFor(strings.ToLower(n.Data)))
}

func (r *renderer) children(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(r.render(c))
	}
	return sb.String()
}

func (r *renderer) element(n *html.Node, s strategy) string {
	switch s.kind {
	case heading:
		return "\n\n" + strings.Repeat("#", s.level) + " " + strings.TrimSpace(r.children(n)) + "\n\n"

	case paragraph:
		return "\n\n" + strings.TrimSpace(r.children(n)) + "\n\n"

	case lineBreak:
		return "  \n"

	case wrap:
		return s.marker + r.children(n) + s.marker

	case inlineCode:
		// A code block inside pre is fenced by the pre.
		if p := n.Parent; p != nil && p.Type == html.ElementNode && strings.EqualFold(p.Data, "pre") {
			return r.children(n)
		}
		return "`" + r.children(n) + "`"

	case preformatted:
		return "\n\n```\n" + strings.TrimSpace(r.children(n)) + "\n```\n\n"

	case link:
		href := attr(n, "href")
		text := strings.TrimSpace(r.children(n))
		if href != "" && text != "" {
			return "[" + text + "](" + href + ")"
		}
		return text

	case image:
		src := attr(n, "src")
		if src == "" {
			return ""
		}
		return "![" + attr(n, "alt") + "](" + src + ")"

	case list:
		return r.list(n, s.ordered)

	case quote:
		text := strings.TrimSpace(r.children(n))
		return "\n\n> " + strings.ReplaceAll(text, "\n", "\n> ") + "\n\n"

	case thematicBreak:
		return "\n\n---\n\n"

	case table:
		return "\n\n" + RenderTable(n) + "\n\n"

	default: // passThrough, listItem
		return r.children(n)
	}
}

// list renders the direct li children of a ul or ol; other children are ignored.
func (r *renderer) list(n *html.Node, ordered bool) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	index := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !strings.EqualFold(c.Data, "li") {
			continue
		}
		index++
		if ordered {
			sb.WriteString(strconv.Itoa(index))
			sb.WriteString(". ")
		} else {
			sb.WriteString("- ")
		}
		sb.WriteString(strings.TrimSpace(r.render(c)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// hide appends display:none to every excluded element below n and returns how
// many were hidden. Excluded subtrees are not descended.
func (r *renderer) hide(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, ok := r.exclusion(c); ok {
			style := strings.TrimSpace(attr(c, "style"))
			if style != "" && !strings.HasSuffix(style, ";") {
				style += ";"
			}
			if style != "" {
				style += " "
			}
			setAttr(c, "style", style+"display: none")
			count++
			continue
		}
		count += r.hide(c)
	}
	return count
}
