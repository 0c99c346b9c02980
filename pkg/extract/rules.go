package extract

// strategyKind is the rendering strategy applied to an element that survived
// the exclusion rules.
type strategyKind int

const (
	passThrough strategyKind = iota
	heading
	paragraph
	lineBreak
	wrap
	inlineCode
	preformatted
	link
	image
	list
	listItem
	quote
	thematicBreak
	table
)

type strategy struct {
	kind    strategyKind
	level   int    // heading level
	marker  string // wrap marker, written on both sides
	ordered bool   // list numbering
}

// renderRules maps a lower-case tag name to its strategy. Tags not listed are
// rendered as pass-through: children only, no markup.
var renderRules = map[string]strategy{
	"h1": {kind: heading, level: 1},
	"h2": {kind: heading, level: 2},
	"h3": {kind: heading, level: 3},
	"h4": {kind: heading, level: 4},
	"h5": {kind: heading, level: 5},
	"h6": {kind: heading, level: 6},

	"p":  {kind: paragraph},
	"br": {kind: lineBreak},

	"strong": {kind: wrap, marker: "**"},
	"b":      {kind: wrap, marker: "**"},
	"em":     {kind: wrap, marker: "*"},
	"i":      {kind: wrap, marker: "*"},
	"del":    {kind: wrap, marker: "~~"},
	"s":      {kind: wrap, marker: "~~"},
	"strike": {kind: wrap, marker: "~~"},

	"code": {kind: inlineCode},
	"pre":  {kind: preformatted},

	"a":   {kind: link},
	"img": {kind: image},

	"ul": {kind: list},
	"ol": {kind: list, ordered: true},
	"li": {kind: listItem},

	"blockquote": {kind: quote},
	"hr":         {kind: thematicBreak},
	"table":      {kind: table},
}

func strategyFor(tag string) strategy {
	if s, ok := renderRules[tag]; ok {
		return s
	}
	return strategy{kind: passThrough}
}
