// Package llm talks to the local Ollama server: chat completions,
// embeddings, and model listing.
package llm

import (
	"context"
	"io"
	"time"
)

// MaxErrorBodySize limits how much of an error response body is read.
const MaxErrorBodySize = 1 * 1024 * 1024

// MaxStreamedResponseSize limits total streamed response size to catch
// runaway generation.
const MaxStreamedResponseSize = 50 * 1024 * 1024

func readLimitedBody(r io.Reader, maxBytes int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxBytes))
}

// Provider is the chat backend the brain generates replies through.
type Provider interface {
	// Chat sends a conversation and returns the response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Name returns the provider identifier.
	Name() string

	// Available reports whether the backend is reachable and has models.
	Available() bool
}

// Embedder produces embedding vectors for the semantic index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	Messages     []Message `json:"messages"`
	MaxTokens    int       `json:"max_tokens,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
}

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the model's reply plus usage metadata.
type ChatResponse struct {
	Content          string        `json:"content"`
	Model            string        `json:"model"`
	TokensUsed       int           `json:"tokens_used,omitempty"`
	PromptTokens     int           `json:"prompt_tokens,omitempty"`
	CompletionTokens int           `json:"completion_tokens,omitempty"`
	Duration         time.Duration `json:"duration"`
	FinishReason     string        `json:"finish_reason,omitempty"`
}

// ProviderConfig configures the Ollama connection.
type ProviderConfig struct {
	Endpoint       string
	Model          string
	EmbeddingModel string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
}

// DefaultConfig returns the local-Ollama defaults.
func DefaultConfig() *ProviderConfig {
	return &ProviderConfig{
		Endpoint:       "http://127.0.0.1:11434",
		Model:          "phi3:mini",
		EmbeddingModel: "nomic-embed-text",
		MaxTokens:      400,
		Temperature:    0.7,
		Timeout:        2 * time.Minute,
	}
}
