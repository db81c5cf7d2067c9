package intents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"devanagari", "आप कैसे हैं", LangHindi},
		{"hinglish two words", "kya haal hai bhai", LangHinglish},
		{"hinglish one word short message", "batao na", LangHinglish},
		{"single hindi word in long english", "ya know the weather is looking quite nice here today", LangEnglish},
		{"english", "how are you doing today", LangEnglish},
		{"empty", "", LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.input))
		})
	}
}

func TestLanguageInstruction(t *testing.T) {
	assert.Contains(t, LanguageInstruction(LangHindi), "Devanagari")
	assert.Contains(t, LanguageInstruction(LangHinglish), "Hinglish")
	assert.Equal(t, "", LanguageInstruction(LangEnglish))
}
