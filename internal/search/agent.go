package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/astralabs/astra/internal/llm"
)

// Outcome is the structured reply of a completed search run.
type Outcome struct {
	Reply        string
	Citations    []Citation
	SearchUsed   bool
	ResultsCount int
}

// Agent runs the full search pipeline: query Serper, format the hits,
// summarize them with the LLM, and attach source citations.
type Agent struct {
	client   *Client
	provider llm.Provider
	model    string
	log      zerolog.Logger
}

// NewAgent wires a search client to a summarization model.
func NewAgent(client *Client, provider llm.Provider, model string, logger zerolog.Logger) *Agent {
	return &Agent{
		client:   client,
		provider: provider,
		model:    model,
		log:      logger.With().Str("component", "search_agent").Logger(),
	}
}

// Run executes the search pipeline for a user query.
func (a *Agent) Run(ctx context.Context, query, userName string) Outcome {
	a.log.Info().Str("query", query).Msg("running search")

	results, err := a.client.Search(ctx, query, DefaultNumResults)
	if err != nil || len(results) == 0 {
		if err != nil {
			a.log.Error().Err(err).Msg("search failed")
		}
		return Outcome{
			Reply: "I tried to search but couldn't get results. Check your SERPER_API_KEY.",
		}
	}

	formatted := FormatForLLM(results)
	citations := ExtractCitations(results)

	prompt := fmt.Sprintf(`You are ASTRA, %s's AI assistant.

Using ONLY the search results below, answer the question concisely and accurately.
Be direct. Cite sources by [number] when using specific facts.
Do not make up information not in the results.

Question: %s

%s

Answer (2-4 sentences, cite sources):`, userName, query, formatted)

	summary := a.summarize(ctx, prompt, results)

	reply := summary + formatCitations(citations)
	return Outcome{
		Reply:        reply,
		Citations:    citations,
		SearchUsed:   true,
		ResultsCount: len(results),
	}
}

func (a *Agent) summarize(ctx context.Context, prompt string, results []Result) string {
	resp, err := a.provider.Chat(ctx, &llm.ChatRequest{
		Model:       a.model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		a.log.Error().Err(err).Msg("summarization failed, falling back to top snippet")
		if snippet := strings.TrimSpace(results[0].Snippet); snippet != "" {
			return snippet
		}
		return "I found some results but couldn't summarize them."
	}
	return strings.TrimSpace(resp.Content)
}

// formatCitations renders up to three sources as a trailing block.
func formatCitations(citations []Citation) string {
	if len(citations) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n📚 Sources:\n")
	for i, c := range citations {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "[%d] %s — %s\n", c.Index, c.Title, c.URL)
	}
	return b.String()
}
