// Package search provides Google search via the Serper API and a small
// agent that summarizes results with an LLM and attaches citations.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the Serper search API URL.
	DefaultEndpoint = "https://google.serper.dev/search"

	// DefaultNumResults is how many organic results to request.
	DefaultNumResults = 5

	// maxContextChars caps the formatted result block handed to the LLM.
	maxContextChars = 2000
)

// Result is a single search hit, either a knowledge graph entry or an
// organic result.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Type    string `json:"type"`
}

// Citation points at the source URL behind a result.
type Citation struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Client talks to the Serper search API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the API URL. Used in tests.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Serper client. An empty API key is allowed; Search
// will fail fast with an explanatory error.
func NewClient(apiKey string, logger zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With().Str("component", "search").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type serperResponse struct {
	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Website     string `json:"website"`
	} `json:"knowledgeGraph"`
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
}

// Search queries Serper and returns the knowledge graph entry (if any)
// followed by up to numResults organic results.
func (c *Client) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search: SERPER_API_KEY not set")
	}
	if numResults <= 0 {
		numResults = DefaultNumResults
	}

	body, err := json.Marshal(serperRequest{Query: query, Num: numResults})
	if err != nil {
		return nil, fmt.Errorf("search: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: API returned status %d", resp.StatusCode)
	}

	var payload serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	var results []Result
	if kg := payload.KnowledgeGraph; kg != nil {
		source := kg.Website
		if source == "" {
			source = "Google Knowledge Graph"
		}
		results = append(results, Result{
			Title:   kg.Title,
			Snippet: kg.Description,
			Source:  source,
			Type:    "knowledge_graph",
		})
	}
	for i, item := range payload.Organic {
		if i >= numResults {
			break
		}
		results = append(results, Result{
			Title:   item.Title,
			Snippet: item.Snippet,
			Source:  item.Link,
			Type:    "organic",
		})
	}

	c.log.Info().Int("results", len(results)).Str("query", query).Msg("search complete")
	return results, nil
}

// FormatForLLM renders results as a numbered context block, truncated to
// keep the prompt small.
func FormatForLLM(results []Result) string {
	if len(results) == 0 {
		return "No search results found."
	}

	var b strings.Builder
	b.WriteString("SEARCH RESULTS:\n")
	total := 0
	for i, r := range results {
		entry := fmt.Sprintf("\n[%d] %s\n%s\nSource: %s\n",
			i+1, strings.TrimSpace(r.Title), strings.TrimSpace(r.Snippet), strings.TrimSpace(r.Source))
		if total+len(entry) > maxContextChars {
			break
		}
		b.WriteString(entry)
		total += len(entry)
	}
	return b.String()
}

// ExtractCitations collects the results that point at real URLs.
func ExtractCitations(results []Result) []Citation {
	var citations []Citation
	for i, r := range results {
		if r.Source != "" && strings.HasPrefix(r.Source, "http") {
			citations = append(citations, Citation{
				Index: i + 1,
				Title: r.Title,
				URL:   r.Source,
			})
		}
	}
	return citations
}
