package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.json")
	return NewStore(path, "Arnav", zerolog.Nop())
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s := testStore(t)

	doc := s.Load()
	require.NotNil(t, doc)
	assert.Equal(t, "Arnav", doc.Preferences.Name)
	assert.Empty(t, doc.UserFacts)
	assert.Equal(t, "neutral", doc.EmotionalPatterns.LastEmotion.Label)
}

func TestLoadCorruptFileReturnsDefault(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	doc := s.Load()
	assert.Equal(t, "Arnav", doc.Preferences.Name)
	assert.Empty(t, doc.UserFacts)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	doc := NewDocument("Arnav")
	doc.AddFact(Fact{Fact: "Lives in Delhi", Type: "location", Subtype: "location", Value: "Delhi", Confidence: 0.9})
	StoreSummary(doc, "talked about go")
	require.NoError(t, s.Save(doc))

	loaded := s.Load()
	require.Len(t, loaded.UserFacts, 1)
	assert.Equal(t, "Delhi", loaded.Preferences.Location)
	require.Len(t, loaded.ConversationSummary, 1)
	assert.Equal(t, "talked about go", loaded.ConversationSummary[0].Summary)
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"user_facts": []}`), 0o644))

	doc := s.Load()
	assert.Equal(t, "Arnav", doc.Preferences.Name)
	require.NotNil(t, doc.EmotionalPatterns)
	assert.NotNil(t, doc.EmotionalPatterns.Stats)
}

func TestAddFactFoldsPreferences(t *testing.T) {
	doc := NewDocument("Arnav")

	doc.AddFact(Fact{Fact: "Name is Dev", Type: "identity", Subtype: "name", Value: "Dev"})
	assert.Equal(t, "Dev", doc.Preferences.Name)

	doc.AddFact(Fact{Fact: "Favorite color is blue", Type: "preference", Subtype: "favorite_color", Value: "blue"})
	assert.Equal(t, "blue", doc.Preferences.FavoriteColor)

	doc.AddFact(Fact{Fact: "Favorite movie is Inception", Type: "preference", Subtype: "favorite_movie", Value: "Inception"})
	assert.Equal(t, "Inception", doc.Preferences.Extra["favorite_movie"])
}
