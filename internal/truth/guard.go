// Package truth validates generated replies against known facts about the
// owner and substitutes a safe line when a reply asserts something false.
package truth

import (
	"fmt"
	"regexp"
	"strings"
)

// Violation identifies which class of false claim a reply tripped.
type Violation string

const (
	WrongLocation     Violation = "wrong_location"
	WrongOrigin       Violation = "wrong_origin"
	WrongCity         Violation = "wrong_city"
	WrongCreator      Violation = "wrong_creator"
	NameHallucination Violation = "name_hallucination"
)

type rule struct {
	pattern   *regexp.Regexp
	violation Violation
	// allowed lists values of the first capture group that make the claim
	// true; empty means any match is a violation.
	allowed []string
}

// Guard checks replies before they leave the pipeline. Rules are evaluated
// in order and the first hit wins.
type Guard struct {
	ownerName string
	rules     []rule
}

// NewGuard builds a guard for the given owner.
func NewGuard(ownerName string) *Guard {
	return &Guard{
		ownerName: ownerName,
		rules: []rule{
			{
				pattern:   regexp.MustCompile(`(?i)you live in (\w+)`),
				violation: WrongLocation,
				allowed:   []string{"delhi", "gurugram"},
			},
			{
				pattern:   regexp.MustCompile(`(?i)you are from (\w+)`),
				violation: WrongOrigin,
				allowed:   []string{"delhi", "india"},
			},
			{
				pattern:   regexp.MustCompile(`(?i)your city is (\w+)`),
				violation: WrongCity,
				allowed:   []string{"delhi", "gurugram"},
			},
			{pattern: regexp.MustCompile(`(?i)created by anthropic`), violation: WrongCreator},
			{pattern: regexp.MustCompile(`(?i)made by anthropic`), violation: WrongCreator},
			{pattern: regexp.MustCompile(`(?i)built by openai`), violation: WrongCreator},
			{pattern: regexp.MustCompile(`(?i)i don't know (?:your|the user's) name`), violation: NameHallucination},
		},
	}
}

// Validate returns (true, "") for a clean reply, otherwise (false, type).
func (g *Guard) Validate(reply string) (bool, Violation) {
	for _, r := range g.rules {
		m := r.pattern.FindStringSubmatch(reply)
		if m == nil {
			continue
		}
		if len(r.allowed) > 0 && len(m) > 1 && contains(r.allowed, strings.ToLower(m[1])) {
			continue
		}
		return false, r.violation
	}
	return true, ""
}

// SafeReply returns the replacement line for a violation type.
func (g *Guard) SafeReply(v Violation) string {
	switch v {
	case WrongLocation:
		return "I don't have confirmed location info."
	case WrongOrigin:
		return "I should verify that before saying."
	case WrongCity:
		return "I'm not certain about that."
	case WrongCreator:
		return fmt.Sprintf("%s created me, actually!", g.ownerName)
	case NameHallucination:
		return fmt.Sprintf("Your name is %s.", g.ownerName)
	default:
		return "Let me be more careful with that answer."
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
