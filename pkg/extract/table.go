package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RenderTable converts a table element into a Markdown pipe table.
// The first row is always used as the header. Cells hold their trimmed text
// only; no Markdown is rendered inside them. A table without rows yields "".
func RenderTable(n *html.Node) string {
	if n == nil {
		return ""
	}
	return renderTable(goquery.NewDocumentFromNode(n).Selection)
}

func renderTable(table *goquery.Selection) string {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return ""
	}

	var sb strings.Builder

	headers := cellTexts(rows.First())
	writeRow(&sb, headers)

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(&sb, separator)

	rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		if cells := cellTexts(tr); len(cells) > 0 {
			writeRow(&sb, cells)
		}
	})

	return sb.String()
}

// cellTexts returns the trimmed text of every th/td below row, in document order.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}
