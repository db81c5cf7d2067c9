package memory

import "strings"

var questionStarts = []string{
	"what", "where", "who", "when", "tell me", "do you know", "what's", "whats",
}

// Recall answers a question about stored information, or returns "" when the
// message is not a recall question. Statements never trigger recall so that
// "my favorite color is blue" reaches the extractor instead.
func Recall(message string, doc *Document, ownerName string) string {
	text := strings.ToLower(strings.TrimSpace(message))

	isQuestion := strings.HasSuffix(text, "?")
	if !isQuestion {
		for _, p := range questionStarts {
			if strings.HasPrefix(text, p) {
				isQuestion = true
				break
			}
		}
	}
	if !isQuestion {
		return ""
	}

	prefs := doc.Preferences
	facts := doc.UserFacts

	if containsAny(text, "my name", "who am i", "do you know my name") {
		name := prefs.Name
		if name == "" {
			name = ownerName
		}
		return "Your name is " + name + "!"
	}

	if containsAny(text, "where do i live", "where am i from", "my city", "my location") {
		if prefs.Location != "" {
			return "You live in " + prefs.Location + "."
		}
		return "I don't know your location yet. Where do you live?"
	}

	if strings.Contains(text, "color") && containsAny(text, "favorite", "favourite", "fav") {
		color := prefs.FavoriteColor
		if color == "" {
			color = searchFacts(facts, "color")
		}
		if color != "" {
			return "Your favorite color is " + color + "!"
		}
		return "I don't know your favorite color yet. What is it?"
	}

	if strings.Contains(text, "food") && containsAny(text, "favorite", "favourite", "fav", "like", "love") {
		food := prefs.FavoriteFood
		if food == "" {
			food = searchFacts(facts, "food")
		}
		if food != "" {
			return "Your favorite food is " + food + "!"
		}
		return "I don't know your favorite food yet. What do you like?"
	}

	if containsAny(text, "my goal", "my goals", "what am i working towards") {
		if goals := factsOfType(facts, "goal", 3); len(goals) > 0 {
			return "Your goals: " + strings.Join(goals, " | ") + "."
		}
		return "I don't know your goals yet. What are you working towards?"
	}

	if containsAny(text, "my project", "what am i building", "what am i working on") {
		if projects := factsOfType(facts, "project", 3); len(projects) > 0 {
			return "You're working on: " + strings.Join(projects, " | ") + "."
		}
		return "I don't know your current projects yet. What are you building?"
	}

	if containsAny(text, "my stack", "my tech", "what do i use", "what languages", "my tools") {
		if tech := factsOfType(facts, "tech_stack", 3); len(tech) > 0 {
			return "Your tech stack: " + strings.Join(tech, " | ") + "."
		}
		return "I don't know your tech stack yet. What do you use?"
	}

	if containsAny(text, "what do you know about me", "what you remember", "tell me about me") {
		var summary []string
		if prefs.Name != "" {
			summary = append(summary, "Name: "+prefs.Name)
		}
		if prefs.Location != "" {
			summary = append(summary, "Location: "+prefs.Location)
		}
		if prefs.FavoriteColor != "" {
			summary = append(summary, "Fav color: "+prefs.FavoriteColor)
		}
		if prefs.FavoriteFood != "" {
			summary = append(summary, "Fav food: "+prefs.FavoriteFood)
		}

		joined := strings.Join(summary, " ")
		start := len(facts) - 5
		if start < 0 {
			start = 0
		}
		for _, f := range facts[start:] {
			if f.Fact != "" && !strings.Contains(joined, f.Fact) {
				summary = append(summary, f.Fact)
			}
		}

		if len(summary) > 0 {
			return "Here's what I know about you:\n• " + strings.Join(summary, "\n• ")
		}
		return "I'm still learning about you! Tell me more."
	}

	return ""
}

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// searchFacts scans newest-first for a fact mentioning the keyword.
func searchFacts(facts []Fact, keyword string) string {
	for i := len(facts) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(facts[i].Fact), keyword) {
			return facts[i].Value
		}
	}
	return ""
}

// factsOfType returns the last max fact strings of the given type.
func factsOfType(facts []Fact, ftype string, max int) []string {
	var out []string
	for _, f := range facts {
		if f.Type == ftype {
			out = append(out, f.Fact)
		}
	}
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}
