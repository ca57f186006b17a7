// Package cleaner turns fetched markup into plain article text. It removes
// known noise subtrees, runs an ordered cascade of extraction strategies,
// and normalises whitespace, always preferring whichever strategy yields
// the most text.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	reSpaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlineRun = regexp.MustCompile(`[ \t]*\n\s*`)
)

// CleanText normalises extracted text: runs of horizontal whitespace collapse
// to a single space, runs of blank lines collapse to a single newline, and
// leading/trailing whitespace is trimmed.
func CleanText(s string) string {
	s = reSpaceRun.ReplaceAllString(s, " ")
	s = reNewlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
