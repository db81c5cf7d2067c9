package intents

import "strings"

var questionWords = []string{
	"what", "how", "why", "who", "when", "where",
	"which", "whose", "whom", "explain", "tell me",
	"define", "describe", "can you", "could you",
	"would you", "should i",
}

var searchKeywords = []string{
	"search", "lookup", "google", "find",
	"who is", "what is", "when did", "where is",
	"search for", "look up", "find out",
}

var commandWords = []string{"create", "make", "build", "write", "generate", "show me"}

// IsQuestion reports whether the text reads as a question, either by a
// trailing question mark or a leading interrogative.
func IsQuestion(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	if strings.HasSuffix(text, "?") {
		return true
	}
	for _, w := range questionWords {
		if strings.HasPrefix(text, w+" ") {
			return true
		}
	}
	return false
}

// IsSearchQuery reports whether the text asks for a web search.
func IsSearchQuery(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range searchKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Classify buckets free-form input into search, question, command or
// statement. Empty input is unknown.
func Classify(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "unknown"
	}
	if IsSearchQuery(text) {
		return "search"
	}
	if IsQuestion(text) {
		return "question"
	}
	lowered := strings.ToLower(text)
	for _, w := range commandWords {
		if strings.HasPrefix(lowered, w) {
			return "command"
		}
	}
	return "statement"
}
