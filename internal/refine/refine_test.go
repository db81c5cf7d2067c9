package refine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"surrounding whitespace", "  hi there  ", "hi there"},
		{"control chars", "hi\x00the\x1fre", "hithere"},
		{"collapsed spaces", "a   b\t\tc", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCriticReview(t *testing.T) {
	got := CriticReview("hey friend, that went well", "Arnav")
	assert.Equal(t, "Hey Arnav, that went well", got)

	long := strings.Repeat("word ", 100)
	reviewed := CriticReview(long, "Arnav")
	assert.LessOrEqual(t, len(strings.Fields(reviewed)), 81)
	assert.True(t, strings.HasSuffix(reviewed, "..."))

	assert.Equal(t, "Capitalized", CriticReview("capitalized", "Arnav"))
	assert.Equal(t, "", CriticReview("", "Arnav"))
}

func TestRefineSelfReferences(t *testing.T) {
	r := NewRefiner(rand.New(rand.NewSource(2))) // seed chosen to skip sign-off

	got := r.Refine("ASTRA thinks this is ASTRA's best answer", "Arnav")
	assert.Contains(t, got, "I think")
	assert.Contains(t, got, "my best answer")
	assert.NotContains(t, got, "ASTRA")
}

func TestRefineKeepsProductReferences(t *testing.T) {
	r := NewRefiner(rand.New(rand.NewSource(2)))

	got := r.Refine("The ASTRA ENGINE architecture handles that", "Arnav")
	assert.Contains(t, got, "ASTRA ENGINE")
}

func TestRefineStripsTrailingName(t *testing.T) {
	r := NewRefiner(rand.New(rand.NewSource(2)))

	got := r.Refine("The neural network is training well, Arnav.", "Arnav")
	assert.False(t, strings.Contains(got, "Arnav"), got)
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestRefineSignOffGates(t *testing.T) {
	r := NewRefiner(rand.New(rand.NewSource(1)))

	// Technical replies never get a sign-off regardless of the draw.
	for i := 0; i < 20; i++ {
		got := r.Refine("The algorithm converges quickly", "Arnav")
		assert.NotContains(t, got, "Arnav")
	}

	// Questions never get one either.
	for i := 0; i < 20; i++ {
		got := r.Refine("Want to try again?", "Arnav")
		assert.NotContains(t, got, "Arnav")
	}
}

func TestRefineSignOffSometimesFires(t *testing.T) {
	fired := false
	for seed := int64(0); seed < 30; seed++ {
		r := NewRefiner(rand.New(rand.NewSource(seed)))
		if strings.Contains(r.Refine("Sounds good to me", "Arnav"), "Arnav") {
			fired = true
			break
		}
	}
	assert.True(t, fired, "sign-off never fired across 30 seeds")
}

func TestPolish(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds period", "hello", "Hello."},
		{"keeps question mark", "really?", "Really?"},
		{"strips trailing junk", "done,; ", "Done."},
		{"collapses punctuation", "wait...what??", "Wait. what?"},
		{"capitalizes", "lowercase start.", "Lowercase start."},
		{"spacing around marks", "yes ,sure", "Yes, sure."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Polish(tt.input))
		})
	}
}

func TestLimitWords(t *testing.T) {
	assert.Equal(t, "short reply", LimitWords("short reply", 60))

	long := strings.Repeat("go ", 70)
	got := LimitWords(long, 60)
	assert.Len(t, strings.Fields(got), 60)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, got, LimitWords(got, 60))

	assert.Equal(t, "", LimitWords("", 60))
}

func TestLimitChars(t *testing.T) {
	assert.Equal(t, "fits", LimitChars("fits", 100))

	got := LimitChars("the quick brown fox jumps over the lazy dog", 20)
	assert.LessOrEqual(t, len(got), 23)
	assert.True(t, strings.HasSuffix(got, "..."))
}
