// Package confidence maps answer sources to calibrated confidence scores
// and renders the five-band labels the API exposes alongside every reply.
package confidence

import (
	"fmt"
	"strings"
)

// Band is one of the five calibration bands a score falls into.
type Band struct {
	Label string
	Emoji string
	Min   float64
}

// Bands are ordered highest first so the first match wins.
var bands = []Band{
	{Label: "CERTAIN", Emoji: "🟢", Min: 0.95},
	{Label: "HIGH", Emoji: "🟡", Min: 0.75},
	{Label: "MEDIUM", Emoji: "🟠", Min: 0.50},
	{Label: "LOW", Emoji: "🔴", Min: 0.25},
	{Label: "UNKNOWN", Emoji: "⚪", Min: 0.0},
}

// sourceScores calibrates each answer path. Deterministic paths score at the
// top, model-generated replies by model tier, failures at zero.
var sourceScores = map[string]float64{
	"shortcut":         1.00,
	"intent_handler":   1.00,
	"memory_recall":    0.95,
	"memory":           0.95,
	"memory_storage":   0.95,
	"web_search":       0.75,
	"web_search_agent": 0.75,
	"mistral:latest":   0.72,
	"llama3.2:3b":      0.65,
	"phi3:mini":        0.60,
	"technical":        0.70,
	"reasoning":        0.68,
	"casual":           0.60,
	"conversational":   0.60,
	"error":            0.00,
	"error_handler":    0.00,
}

// DefaultScore applies when no source is recognized.
const DefaultScore = 0.55

// Score returns the calibrated confidence for an answer source. The source
// may be an agent name, an intent, or a model name; lookups are
// case-insensitive.
func Score(source string) float64 {
	if s, ok := sourceScores[strings.ToLower(strings.TrimSpace(source))]; ok {
		return s
	}
	return DefaultScore
}

// ForModel scores a model-generated reply by model name, falling back to the
// intent class when the model is unknown.
func ForModel(model, intent string) float64 {
	if s, ok := sourceScores[strings.ToLower(model)]; ok {
		return s
	}
	if s, ok := sourceScores[strings.ToLower(intent)]; ok {
		return s
	}
	return DefaultScore
}

// Classify clamps the score to [0, 1] and returns its band.
func Classify(score float64) Band {
	score = Clamp(score)
	for _, b := range bands {
		if score >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Label returns the band label for a score.
func Label(score float64) string { return Classify(score).Label }

// Emoji returns the band emoji for a score.
func Emoji(score float64) string { return Classify(score).Emoji }

// Clamp bounds a score to [0, 1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Bar renders a fixed-width ASCII confidence bar, e.g. "[████████──] 80%".
func Bar(score float64, width int) string {
	if width <= 0 {
		width = 10
	}
	score = Clamp(score)
	filled := int(score*float64(width) + 0.5)
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("█", filled))
	sb.WriteString(strings.Repeat("─", width-filled))
	sb.WriteString(fmt.Sprintf("] %d%%", int(score*100+0.5)))
	return sb.String()
}
