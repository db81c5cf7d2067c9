package refine

import (
	"regexp"
	"strings"
)

const criticWordCap = 80

var genericAddress = regexp.MustCompile(`(?i)\b(friend|buddy|pal)\b`)

var bannedPhrases = []string{
	"you, friend",
	"dear friend",
	"my friend",
	"hey friend",
}

// CriticReview fixes the common model failure modes: addressing the user as
// "friend", unbounded length, filler phrases, broken spacing and
// capitalization.
func CriticReview(reply, userName string) string {
	if reply == "" {
		return reply
	}

	reply = genericAddress.ReplaceAllString(reply, userName)

	words := strings.Fields(reply)
	if len(words) > criticWordCap {
		reply = strings.Join(words[:criticWordCap], " ") + "..."
	}

	for _, phrase := range bannedPhrases {
		reply = strings.ReplaceAll(reply, phrase, userName)
	}

	reply = multiSpace.ReplaceAllString(reply, " ")
	reply = capitalize(strings.TrimSpace(reply))
	return reply
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}
