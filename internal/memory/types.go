// Package memory persists everything the assistant knows about its owner:
// extracted facts, preferences, conversation summaries, emotional patterns
// and tasks, all in a single JSON document on disk.
package memory

import (
	"time"

	"github.com/astralabs/astra/internal/emotion"
)

// Fact is one structured piece of knowledge extracted from user input.
type Fact struct {
	Fact       string  `json:"fact"`
	Type       string  `json:"type"`
	Subtype    string  `json:"subtype"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	AddedAt    string  `json:"added_at"`
}

// Preferences are the quick-lookup slice of the document, folded in from
// facts as they arrive. Extra holds dynamic favorite_* keys.
type Preferences struct {
	Name          string            `json:"name"`
	Location      string            `json:"location,omitempty"`
	FavoriteColor string            `json:"favorite_color,omitempty"`
	FavoriteFood  string            `json:"favorite_food,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// Summary is one condensed block of past conversation.
type Summary struct {
	Summary      string `json:"summary"`
	Timestamp    string `json:"timestamp"`
	MessageCount int    `json:"message_count"`
}

// Task is a tracked to-do item.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Document is the full persistent memory.
type Document struct {
	UserFacts           []Fact            `json:"user_facts"`
	Preferences         Preferences       `json:"preferences"`
	ConversationSummary []Summary         `json:"conversation_summary"`
	EmotionalPatterns   *emotion.Patterns `json:"emotional_patterns"`
	Tasks               []Task            `json:"tasks,omitempty"`
}

// NewDocument returns the default document for an owner.
func NewDocument(ownerName string) *Document {
	return &Document{
		UserFacts:           []Fact{},
		Preferences:         Preferences{Name: ownerName},
		ConversationSummary: []Summary{},
		EmotionalPatterns:   emotion.NewPatterns(),
	}
}

// Ensure fills in anything a partial or legacy file on disk left out.
func (d *Document) Ensure(ownerName string) {
	if d.UserFacts == nil {
		d.UserFacts = []Fact{}
	}
	if d.Preferences.Name == "" {
		d.Preferences.Name = ownerName
	}
	if d.ConversationSummary == nil {
		d.ConversationSummary = []Summary{}
	}
	if d.EmotionalPatterns == nil {
		d.EmotionalPatterns = emotion.NewPatterns()
	}
	d.EmotionalPatterns.Ensure()
}

// AddFact appends the fact and folds it into preferences.
func (d *Document) AddFact(f Fact) {
	d.UserFacts = append(d.UserFacts, f)

	switch f.Type {
	case "identity":
		d.Preferences.Name = f.Value
	case "location":
		d.Preferences.Location = f.Value
	case "preference":
		switch f.Subtype {
		case "favorite_color":
			d.Preferences.FavoriteColor = f.Value
		case "favorite_food":
			d.Preferences.FavoriteFood = f.Value
		default:
			if d.Preferences.Extra == nil {
				d.Preferences.Extra = map[string]string{}
			}
			d.Preferences.Extra[f.Subtype] = f.Value
		}
	}
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
