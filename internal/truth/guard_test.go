package truth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	g := NewGuard("Arnav")

	tests := []struct {
		name      string
		reply     string
		ok        bool
		violation Violation
	}{
		{"clean reply", "The capital of France is Paris.", true, ""},
		{"wrong location", "You live in Mumbai, right?", false, WrongLocation},
		{"allowed location", "You live in Delhi, right?", true, ""},
		{"allowed location gurugram", "you live in gurugram these days", true, ""},
		{"wrong origin", "You are from Canada.", false, WrongOrigin},
		{"allowed origin", "You are from India.", true, ""},
		{"wrong city", "Your city is Boston.", false, WrongCity},
		{"wrong creator anthropic", "I was created by Anthropic.", false, WrongCreator},
		{"wrong creator openai", "I was built by OpenAI.", false, WrongCreator},
		{"name hallucination", "Sorry, I don't know your name.", false, NameHallucination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, v := g.Validate(tt.reply)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.violation, v)
		})
	}
}

func TestSafeReply(t *testing.T) {
	g := NewGuard("Arnav")

	assert.Equal(t, "Arnav created me, actually!", g.SafeReply(WrongCreator))
	assert.Equal(t, "Your name is Arnav.", g.SafeReply(NameHallucination))
	assert.Equal(t, "I don't have confirmed location info.", g.SafeReply(WrongLocation))
	assert.Equal(t, "Let me be more careful with that answer.", g.SafeReply("something_else"))
}
