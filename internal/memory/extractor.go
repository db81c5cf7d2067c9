package memory

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	namePattern     = regexp.MustCompile(`(?i)(my name is|call me|i'm called)\s+([A-Za-z]{2,})`)
	locationPattern = regexp.MustCompile(`(i live in|i'm from|i am from|living in)\s+([A-Za-z\s]{2,})`)
	languagePattern = regexp.MustCompile(`my (?:fav(?:ou?rite)?|preferred)\s+(?:programming\s+)?language is\s+([A-Za-z+#]+)`)
	colorPattern    = regexp.MustCompile(`(my (?:fav(?:ou?rite)?) color is|fav color:?)\s+(\w+)`)
	foodPattern     = regexp.MustCompile(`(my (?:fav(?:ou?rite)?) food is|i love eating)\s+([A-Za-z\s]+?)(?:\.|,|$)`)
	generalPattern  = regexp.MustCompile(`(my fav(?:ou?rite)?)\s+([a-z]+)\s+is\s+([A-Za-z\s]+?)(?:\.|,|$)`)

	goalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(my goal is|i want to|i'm trying to|i aim to)\s+(.+?)(?:\.|,|$)`),
		regexp.MustCompile(`(i'm doing|i started|i'm working on)\s+(.+?)(?:\.|,|$)`),
	}
	projectPattern = regexp.MustCompile(`(i'm building|i'm making|i'm working on|my project is|i built)\s+([A-Za-z\s]+?)(?:\.|,|$)`)
	techPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`(i use|i work with|i know|i prefer|i'm learning|my stack is)\s+([A-Za-z\s,+]+?)(?:\.|,|$)`),
		regexp.MustCompile(`(i code in|i write in|i develop in)\s+([A-Za-z\s,+]+?)(?:\.|,|$)`),
	}
)

// Words a name capture that are really emotion or filler words, not names.
var notNames = map[string]bool{
	"happy": true, "sad": true, "angry": true, "tired": true,
	"good": true, "bad": true, "so": true, "very": true,
}

var goalTriggers = []string{"learn", "build", "complete", "finish", "achieve", "become", "create", "master"}

var techKeywords = []string{
	"python", "javascript", "react", "vue", "flask", "django", "fastapi",
	"node", "typescript", "rust", "golang", "java", "swift", "kotlin",
	"tensorflow", "pytorch", "langchain", "docker", "kubernetes", "aws",
}

// ExtractFact pulls one structured fact out of free text, or nil when the
// text states nothing worth remembering. Pattern order matters: identity
// beats location beats preferences.
func ExtractFact(text string) *Fact {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}
	t := strings.ToLower(raw)

	if m := namePattern.FindStringSubmatch(raw); m != nil {
		name := strings.TrimSpace(m[2])
		if !notNames[strings.ToLower(name)] {
			return newFact("Name is "+name, "identity", "name", name, 0.95)
		}
	}

	if m := locationPattern.FindStringSubmatch(t); m != nil {
		loc := strings.TrimRight(strings.TrimSpace(m[2]), ".,")
		if len(loc) > 1 {
			loc = titleWords(loc)
			return newFact("Lives in "+loc, "location", "location", loc, 0.9)
		}
	}

	if m := languagePattern.FindStringSubmatch(t); m != nil {
		lang := titleWords(strings.TrimSpace(m[1]))
		return newFact("Favorite programming language is "+lang, "preference", "favorite_language", lang, 0.95)
	}

	if m := colorPattern.FindStringSubmatch(t); m != nil {
		color := m[2]
		return newFact("Favorite color is "+color, "preference", "favorite_color", color, 0.9)
	}

	if m := foodPattern.FindStringSubmatch(t); m != nil {
		food := strings.TrimSpace(m[2])
		return newFact("Favorite food is "+food, "preference", "favorite_food", food, 0.9)
	}

	for _, p := range goalPatterns {
		m := p.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		goal := strings.TrimSpace(m[2])
		for _, trigger := range goalTriggers {
			if strings.Contains(goal, trigger) {
				return newFact("Goal: "+goal, "goal", "goal", goal, 0.85)
			}
		}
	}

	if m := projectPattern.FindStringSubmatch(t); m != nil {
		project := strings.TrimSpace(m[2])
		if len(project) > 3 {
			return newFact("Working on: "+project, "project", "active_project", project, 0.85)
		}
	}

	for _, p := range techPatterns {
		m := p.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		tech := strings.TrimSpace(m[2])
		var matched []string
		for _, kw := range techKeywords {
			if strings.Contains(strings.ToLower(tech), kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			return newFact("Uses "+tech, "tech_stack", "tech_stack", strings.Join(matched, ", "), 0.85)
		}
	}

	if m := generalPattern.FindStringSubmatch(t); m != nil {
		prefType := strings.TrimSpace(m[2])
		prefVal := strings.TrimSpace(m[3])
		return newFact(
			fmt.Sprintf("Favorite %s is %s", prefType, prefVal),
			"preference", "favorite_"+prefType, prefVal, 0.85,
		)
	}

	return nil
}

func newFact(fact, ftype, subtype, value string, confidence float64) *Fact {
	return &Fact{
		Fact:       fact,
		Type:       ftype,
		Subtype:    subtype,
		Value:      value,
		Confidence: confidence,
		AddedAt:    nowStamp(),
	}
}

func titleWords(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
