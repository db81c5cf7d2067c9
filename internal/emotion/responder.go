package emotion

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var replies = map[string][]string{
	"sad": {
		"That sounds tough. I'm here for you.",
		"I'm sorry you're feeling down.",
		"Want to talk about it?",
	},
	"angry": {
		"I get why you're frustrated.",
		"That sounds annoying. Want to vent?",
		"I understand why that would upset you.",
	},
	"anxious": {
		"That seems stressful. Let's break it down.",
		"Take a breath. We'll figure this out.",
		"I'm here to help with whatever's worrying you.",
	},
	"joy": {
		"Love that energy!",
		"That's awesome!",
		"Glad you're feeling great!",
	},
	"tired": {
		"Rest if you can. You deserve it.",
		"Take a break if you need one.",
		"Sounds like you need some downtime.",
	},
	"surprised": {
		"Whoa! Didn't see that coming!",
		"That's unexpected!",
		"Wow, really?",
	},
	"neutral": {
		"Got it.",
		"Alright.",
		"I'm listening.",
	},
}

var insights = map[string]string{
	"sad":     "You've been feeling down lately.",
	"angry":   "You seem frustrated often.",
	"anxious": "You've been stressed quite a bit.",
	"tired":   "You've been exhausted lately.",
}

var genericNames = map[string]bool{
	"friend": true, "user": true, "buddy": true, "anonymous": true,
}

// Responder generates empathetic lines. The random source is injected so
// tests can pin the selection.
type Responder struct {
	rng *rand.Rand
}

// NewResponder builds a Responder from a seeded source. A nil source falls
// back to a time-seeded one.
func NewResponder(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{rng: rng}
}

// ChooseReply picks an empathetic line for the detected emotion, optionally
// personalized with the user's name and, one time in five, extended with an
// insight once a label has recurred more than three times.
func (r *Responder) ChooseReply(label string, userName string, patterns *Patterns) string {
	options, ok := replies[label]
	if !ok {
		options = replies["neutral"]
	}
	reply := options[r.rng.Intn(len(options))]

	if userName != "" && !genericNames[strings.ToLower(userName)] {
		reply = fmt.Sprintf("%s %s.", reply, userName)
	}

	if patterns != nil && r.rng.Float64() < 0.20 && label != "neutral" {
		if patterns.Stats[label].Count > 3 {
			if insight, ok := insights[label]; ok {
				reply += " " + insight
			}
		}
	}

	return reply
}
