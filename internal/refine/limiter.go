package refine

import "strings"

// LimitWords truncates text to at most maxWords words, dropping a trailing
// comma-class mark and appending an ellipsis when it cuts.
func LimitWords(text string, maxWords int) string {
	if text == "" {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}

	truncated := strings.Join(words[:maxWords], " ")
	truncated = strings.TrimRight(truncated, ",.;:")
	return truncated + "..."
}

// LimitChars truncates text to at most maxChars characters on a word
// boundary, appending an ellipsis when it cuts.
func LimitChars(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
