package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatFunc runs a single-prompt completion against a model. The brain wires
// this to the LLM provider; tests substitute a stub.
type ChatFunc func(ctx context.Context, model, prompt string) (string, error)

const (
	summaryInterval = 10
	summaryLimit    = 10
)

// ShouldSummarize triggers every ten history messages.
func ShouldSummarize(historyLen int) bool {
	return historyLen >= summaryInterval && historyLen%summaryInterval == 0
}

// Summarizer condenses recent conversation into short summaries that feed
// back into the model's context on later turns.
type Summarizer struct {
	chat  ChatFunc
	model string
	log   zerolog.Logger
}

// NewSummarizer builds a summarizer using the given model.
func NewSummarizer(chat ChatFunc, model string, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		chat:  chat,
		model: model,
		log:   log.With().Str("component", "summarizer").Logger(),
	}
}

// Summarize condenses the last ten messages into 2-3 sentences. When the
// model is unreachable it falls back to a keyword digest so a summary is
// always produced.
func (s *Summarizer) Summarize(ctx context.Context, history []Message, ownerName string) string {
	if len(history) == 0 {
		return ""
	}

	recent := history
	if len(recent) > summaryInterval {
		recent = recent[len(recent)-summaryInterval:]
	}

	var lines []string
	for _, m := range recent {
		content := m.Content
		if len(content) > 100 {
			content = content[:100]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(m.Role), content))
	}

	prompt := fmt.Sprintf(`Summarize this conversation between %s and ASTRA in 2-3 sentences.
Focus on: what %s asked about, what topics were discussed, any decisions made.
Be factual and concise. No fluff.

Conversation:
%s

Summary:`, ownerName, ownerName, strings.Join(lines, "\n"))

	summary, err := s.chat(ctx, s.model, prompt)
	if err != nil {
		s.log.Error().Err(err).Msg("summarization failed, using keyword fallback")
		return keywordSummary(recent, ownerName)
	}
	return strings.TrimSpace(summary)
}

// keywordSummary is the no-model fallback: the first few long words the user
// used, as a topic list.
func keywordSummary(recent []Message, ownerName string) string {
	seen := map[string]bool{}
	var topics []string
	for _, m := range recent {
		if m.Role != "user" {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(m.Content)) {
			if len(w) > 5 && !seen[w] {
				seen[w] = true
				topics = append(topics, w)
			}
		}
	}
	if len(topics) > 5 {
		topics = topics[:5]
	}
	return fmt.Sprintf("%s discussed: %s.", ownerName, strings.Join(topics, ", "))
}

// StoreSummary appends a summary to the document, keeping the last ten.
func StoreSummary(doc *Document, summary string) {
	doc.ConversationSummary = append(doc.ConversationSummary, Summary{
		Summary:      summary,
		Timestamp:    nowStamp(),
		MessageCount: len(doc.ConversationSummary)*summaryInterval + summaryInterval,
	})
	if len(doc.ConversationSummary) > summaryLimit {
		doc.ConversationSummary = doc.ConversationSummary[len(doc.ConversationSummary)-summaryLimit:]
	}
}

// RecentContext renders the last maxSummaries summaries as a context block
// for the system prompt, empty when there are none.
func RecentContext(doc *Document, maxSummaries int) string {
	summaries := doc.ConversationSummary
	if len(summaries) == 0 {
		return ""
	}
	if len(summaries) > maxSummaries {
		summaries = summaries[len(summaries)-maxSummaries:]
	}

	var sb strings.Builder
	sb.WriteString("\nPREVIOUS CONVERSATION CONTEXT:\n")
	for _, s := range summaries {
		ts := s.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", ts, s.Summary))
	}
	return sb.String()
}
