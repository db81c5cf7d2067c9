package intents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableMatch(t *testing.T) {
	table := NewTable("Arnav")

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"creator english", "hey, who made you?", "Arnav built me. Pretty awesome, right?"},
		{"creator by owner name", "did arnav write you", "Arnav built me. Pretty awesome, right?"},
		{"creator hindi", "tumhe kisne banaya", "Arnav ne mujhe banaya hai. Kafi cool hai na?"},
		{"identity", "who are you exactly", "I'm ASTRA, your personal AI assistant."},
		{"greeting", "hello there", "Doing great! What's up?"},
		{"capabilities", "so what can you do", "I can chat, search the web, remember things, and answer questions. What do you need?"},
		{"hindi greeting", "namaste ji", "Namaste! Kaise madad kar sakta hoon?"},
		{"language switch", "can you speak hindi", "Haan bilkul! Hindi mein baat karte hain."},
		{"no match", "summarize this article for me", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Match(tt.message))
		})
	}
}

func TestTableMatchLongestTriggerFirst(t *testing.T) {
	table := NewTable("Arnav")

	// "who is your creator" contains the shorter trigger "your creator" too;
	// both resolve to the creator response, so check via a pair where the
	// outcome differs: "what's your name" vs "your name".
	got := table.Match("what's your name?")
	assert.Equal(t, "I'm ASTRA, your personal AI assistant.", got)
}

func TestTableTimeQueries(t *testing.T) {
	table := NewTable("Arnav")
	table.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	reply := table.Match("what time is it in london")
	assert.Contains(t, reply, "in London right now.")

	local := table.Match("current time please")
	assert.Contains(t, local, "Current time:")
}

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"what is go", true},
		{"is it raining?", true},
		{"tell me about rust", true},
		{"should i refactor this", true},
		{"i live in pune", false},
		{"", false},
		{"whatever happens", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsQuestion(tt.text), tt.text)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"search for go generics", "search"},
		{"why is the sky blue", "question"},
		{"create a todo list", "command"},
		{"i finished the feature", "statement"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), tt.text)
	}
}
