package extract

import (
	"regexp"
	"strings"
)

var (
	newlineRun = regexp.MustCompile(`\n{3,}`)
	spaceRun   = regexp.MustCompile(` {2,}`)
)

// PostProcess normalizes assembled Markdown: runs of three or more newlines
// become a blank line, runs of spaces become one space, and the result is
// trimmed. PostProcess(PostProcess(s)) == PostProcess(s).
func PostProcess(s string) string {
	s = newlineRun.ReplaceAllString(s, "\n\n")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
