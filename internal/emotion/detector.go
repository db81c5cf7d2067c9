// Package emotion detects the user's emotional state from message text and
// tracks it over time so replies can open with an empathetic line.
package emotion

import (
	"math"
	"regexp"
	"strings"
)

// State is a detected emotion with its confidence score.
type State struct {
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Neutral is the zero detection.
var Neutral = State{Label: "neutral", Score: 0.0}

var keywordSets = map[string][]string{
	"sad":       {"sad", "depressed", "down", "unhappy", "sucks", "lonely", "miserable", "upset", "blue", "cry"},
	"angry":     {"angry", "mad", "furious", "pissed", "hate", "annoyed", "irritated", "frustrated", "rage"},
	"joy":       {"happy", "great", "awesome", "amazing", "excited", "glad", "yay", "wonderful", "fantastic", "love", "enjoy", "pleased", "delighted"},
	"anxious":   {"anxious", "anxiety", "nervous", "worried", "scared", "afraid", "stress", "tense", "panic"},
	"tired":     {"tired", "exhausted", "sleepy", "drained", "fatigue", "weary", "worn"},
	"surprised": {"surprised", "shocked", "wow", "whoa", "omg", "can't believe", "unbelievable"},
}

var keywordPatterns = func() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(keywordSets))
	for label, words := range keywordSets {
		for _, w := range words {
			out[label] = append(out[label], regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
		}
	}
	return out
}()

var nonWord = regexp.MustCompile(`[^\w\s']`)

func normalize(text string) string {
	return nonWord.ReplaceAllString(strings.ToLower(text), " ")
}

// Detect scores the text against each emotion's keyword set and returns the
// dominant label. Score is matches relative to message length, doubled, then
// boosted by half again when more than one keyword hits. No hits is neutral.
func Detect(text string) State {
	normalized := normalize(text)
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return Neutral
	}

	bestLabel := "neutral"
	bestCount := 0
	for _, label := range []string{"sad", "angry", "joy", "anxious", "tired", "surprised"} {
		count := 0
		for _, pat := range keywordPatterns[label] {
			count += len(pat.FindAllStringIndex(normalized, -1))
		}
		if count > bestCount {
			bestCount = count
			bestLabel = label
		}
	}

	if bestCount == 0 {
		return Neutral
	}

	score := math.Min(1.0, float64(bestCount)/float64(len(words))*2.0)
	if bestCount > 1 {
		score = math.Min(1.0, score*1.5)
	}
	if score < 0.01 {
		return Neutral
	}

	return State{Label: bestLabel, Score: math.Round(score*100) / 100}
}
