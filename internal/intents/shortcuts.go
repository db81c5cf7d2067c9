// Package intents answers a fixed set of common questions without touching a
// model and classifies free-form input for the rest of the pipeline.
package intents

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	whoAreYou  = "I'm ASTRA, your personal AI assistant."
	howAreYou  = "Doing great! What's up?"
	whatICanDo = "I can chat, search the web, remember things, and answer questions. What do you need?"
	whoHindi   = "Main ASTRA hoon, aapka personal AI assistant."
	howHindi   = "Main bilkul theek hoon! Aap sunao?"
	canDoHindi = "Main baat kar sakta hoon, web search kar sakta hoon, cheezein yaad rakh sakta hoon. Kya chahiye?"
)

// creatorResponse and creatorHindi are templates filled with the owner name.
const (
	creatorResponse = "%s built me. Pretty awesome, right?"
	creatorHindi    = "%s ne mujhe banaya hai. Kafi cool hai na?"
)

type shortcut struct {
	trigger  string
	response string
	creator  bool // response is an owner-name template
	hindi    bool
}

var shortcuts = []shortcut{
	{trigger: "who made you", creator: true},
	{trigger: "who created you", creator: true},
	{trigger: "who built you", creator: true},
	{trigger: "who developed you", creator: true},
	{trigger: "your creator", creator: true},
	{trigger: "made by", creator: true},
	{trigger: "built by", creator: true},
	{trigger: "created by", creator: true},
	{trigger: "who is your creator", creator: true},
	{trigger: "who programmed you", creator: true},

	{trigger: "kisne banaya", creator: true, hindi: true},
	{trigger: "kisne bnaya", creator: true, hindi: true},
	{trigger: "kisne banayi", creator: true, hindi: true},
	{trigger: "tumhe kisne", creator: true, hindi: true},
	{trigger: "kaun banaya", creator: true, hindi: true},

	{trigger: "who are you", response: whoAreYou},
	{trigger: "what are you", response: whoAreYou},
	{trigger: "your name", response: whoAreYou},
	{trigger: "what's your name", response: whoAreYou},
	{trigger: "introduce yourself", response: whoAreYou},
	{trigger: "tell me about yourself", response: whoAreYou},

	{trigger: "tum kaun ho", response: whoHindi},
	{trigger: "aap kaun ho", response: whoHindi},
	{trigger: "tumhara naam", response: whoHindi},
	{trigger: "apna naam", response: whoHindi},
	{trigger: "kaun ho tum", response: whoHindi},

	{trigger: "how are you", response: howAreYou},
	{trigger: "how's it going", response: howAreYou},
	{trigger: "what's up", response: "Not much! What do you need?"},
	{trigger: "sup", response: "Hey! What's up?"},
	{trigger: "good morning", response: "Good morning! How can I help?"},
	{trigger: "good night", response: "Good night! Rest well."},

	{trigger: "kaise ho", response: howHindi},
	{trigger: "kaisa hai", response: howHindi},
	{trigger: "kya hal hai", response: "Sab badhiya! Batao kya chahiye?"},
	{trigger: "kya haal", response: "Main theek hoon! Aap batao?"},
	{trigger: "sab theek", response: "Haan bilkul! Aap sunao?"},
	{trigger: "namaste", response: "Namaste! Kaise madad kar sakta hoon?"},
	{trigger: "namaskar", response: "Namaskar! Kya kaam hai?"},
	{trigger: "hello", response: howAreYou},

	{trigger: "what can you do", response: whatICanDo},
	{trigger: "what you can do", response: whatICanDo},
	{trigger: "your abilities", response: whatICanDo},
	{trigger: "your features", response: whatICanDo},
	{trigger: "what do you do", response: whatICanDo},

	{trigger: "kya kar sakte", response: canDoHindi},
	{trigger: "kya karta hai", response: canDoHindi},
	{trigger: "kya kar sakta", response: canDoHindi},
	{trigger: "kya kaam kar", response: canDoHindi},
	{trigger: "tumhari kya", response: canDoHindi},

	{trigger: "speak hindi", response: "Haan, main Hindi mein baat kar sakta hoon! Batao kya chahiye?"},
	{trigger: "speak in hindi", response: "Zaroor! Batao kya poochna hai?"},
	{trigger: "can you speak hindi", response: "Haan bilkul! Hindi mein baat karte hain."},
	{trigger: "talk in hindi", response: "Haan, Hindi mein baat karte hain! Kya poochna hai?"},
	{trigger: "hindi mein baat", response: "Zaroor! Batao."},
	{trigger: "speak english", response: "Sure! Back to English. What do you need?"},
	{trigger: "talk in english", response: "Of course! What would you like to know?"},
}

var cityZones = []struct {
	city string
	zone string
}{
	{"new york", "America/New_York"},
	{"london", "Europe/London"},
	{"tokyo", "Asia/Tokyo"},
	{"dubai", "Asia/Dubai"},
	{"los angeles", "America/Los_Angeles"},
	{"chicago", "America/Chicago"},
}

// Table matches messages against the shortcut triggers, longest trigger
// first so "who is your creator" wins over "your creator".
type Table struct {
	ownerName string
	sorted    []shortcut
	now       func() time.Time
}

// NewTable builds a shortcut table for the given owner name.
func NewTable(ownerName string) *Table {
	sorted := make([]shortcut, len(shortcuts), len(shortcuts)+5)
	copy(sorted, shortcuts)

	// Triggers that mention the owner by name.
	owner := strings.ToLower(ownerName)
	if owner != "" {
		sorted = append(sorted,
			shortcut{trigger: "did " + owner, creator: true},
			shortcut{trigger: owner + " build", creator: true},
			shortcut{trigger: owner + " made", creator: true},
			shortcut{trigger: owner + " create", creator: true},
			shortcut{trigger: owner + " ne banaya", creator: true, hindi: true},
		)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].trigger) > len(sorted[j].trigger)
	})
	return &Table{ownerName: ownerName, sorted: sorted, now: time.Now}
}

// Match returns the canned response for the message, or "" when no trigger
// fires. Time questions are resolved against the named city's zone, local
// time when no city is mentioned.
func (t *Table) Match(message string) string {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return ""
	}

	if strings.Contains(text, "time in") || strings.Contains(text, "current time") || strings.Contains(text, "what time") {
		return t.timeReply(text)
	}

	for _, s := range t.sorted {
		if strings.Contains(text, s.trigger) {
			if s.creator {
				if s.hindi {
					return fmt.Sprintf(creatorHindi, t.ownerName)
				}
				return fmt.Sprintf(creatorResponse, t.ownerName)
			}
			return s.response
		}
	}
	return ""
}

func (t *Table) timeReply(text string) string {
	for _, cz := range cityZones {
		if strings.Contains(text, cz.city) {
			loc, err := time.LoadLocation(cz.zone)
			if err != nil {
				continue
			}
			now := t.now().In(loc)
			return fmt.Sprintf("It's %s in %s right now.", now.Format("03:04 PM"), titleCase(cz.city))
		}
	}
	return fmt.Sprintf("Current time: %s", t.now().Format("03:04 PM"))
}

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
