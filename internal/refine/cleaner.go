// Package refine post-processes model replies: input cleaning, name and
// self-reference fixes, polishing, and word limits.
package refine

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]|[\x{0080}-\x{009f}]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// Clean strips control characters and collapses runs of whitespace. Used on
// raw user input before anything else sees it. Whitespace collapses first so
// tabs and newlines become spaces instead of vanishing with the control set.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = multiSpace.ReplaceAllString(text, " ")
	text = controlChars.ReplaceAllString(text, "")
	return text
}
