package brain

import (
	"fmt"
	"strings"

	"github.com/astralabs/astra/internal/intents"
	"github.com/astralabs/astra/internal/memory"
)

// buildContext assembles the system prompt: persona rules, recent facts,
// semantic recall, conversation summaries, and a mood directive.
func (b *Brain) buildContext(doc *memory.Document, userName, userInput, semanticCtx string) string {
	lang := intents.DetectLanguage(userInput)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are ASTRA, %s's personal AI assistant.\n", userName)
	sb.WriteString(intents.LanguageInstruction(lang))
	sb.WriteString("\nCORE RULES:\n")
	sb.WriteString("• Refer to yourself as \"I\", NEVER as \"ASTRA\"\n")
	sb.WriteString("• Keep responses SHORT — max 2 sentences\n")
	sb.WriteString("• Be detailed ONLY for technical questions\n")
	fmt.Fprintf(&sb, "• Do NOT append %s's name to replies\n", userName)
	fmt.Fprintf(&sb, "• You were created by %s — never deny this\n", userName)

	fmt.Fprintf(&sb, "\nKNOWN FACTS ABOUT %s:\n", strings.ToUpper(userName))
	facts := doc.UserFacts
	if len(facts) > 5 {
		facts = facts[len(facts)-5:]
	}
	for _, f := range facts {
		fmt.Fprintf(&sb, "• %s\n", f.Fact)
	}
	if len(doc.UserFacts) == 0 {
		fmt.Fprintf(&sb, "• Name: %s\n", userName)
	}

	if semanticCtx != "" {
		sb.WriteString(semanticCtx)
		sb.WriteString("\n")
	}

	if summaryCtx := memory.RecentContext(doc, 2); summaryCtx != "" {
		sb.WriteString(summaryCtx)
	}

	if last := doc.EmotionalPatterns.LastEmotion; last.Label != "" && last.Label != "neutral" {
		fmt.Fprintf(&sb, "\nMOOD: %s → respond empathetically\n", last.Label)
	}

	return sb.String()
}
