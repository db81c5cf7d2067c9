package refine

import (
	"regexp"
	"strings"
)

var (
	trailingJunk    = regexp.MustCompile(`[,;:\s]+$`)
	repeatedPeriod  = regexp.MustCompile(`\.{2,}`)
	repeatedQuery   = regexp.MustCompile(`\?{2,}`)
	repeatedBang    = regexp.MustCompile(`!{2,}`)
	spaceBeforeMark = regexp.MustCompile(`\s+([,.!?;:])`)
	markNoSpace     = regexp.MustCompile(`([,.!?;:])\s*([a-zA-Z])`)
)

// Polish is the last formatting pass: terminal punctuation, collapsed
// repeated punctuation, capitalization, punctuation spacing.
func Polish(text string) string {
	if text == "" {
		return text
	}

	text = strings.TrimSpace(text)
	text = trailingJunk.ReplaceAllString(text, "")

	if text != "" && !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}

	text = repeatedPeriod.ReplaceAllString(text, ".")
	text = repeatedQuery.ReplaceAllString(text, "?")
	text = repeatedBang.ReplaceAllString(text, "!")

	text = capitalize(text)

	text = spaceBeforeMark.ReplaceAllString(text, "$1")
	text = markNoSpace.ReplaceAllString(text, "$1 $2")

	return text
}
