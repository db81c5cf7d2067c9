package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamingChatServer(t *testing.T, tokens []string, model string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			var req ollamaChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, req.Stream)

			enc := json.NewEncoder(w)
			for _, tok := range tokens {
				require.NoError(t, enc.Encode(ollamaChatResponse{
					Model:   model,
					Message: ollamaMessage{Role: "assistant", Content: tok},
				}))
			}
			require.NoError(t, enc.Encode(ollamaChatResponse{
				Model:           model,
				Done:            true,
				PromptEvalCount: 12,
				EvalCount:       len(tokens),
			}))
		case "/api/tags":
			fmt.Fprintf(w, `{"models":[{"name":"%s","model":"%s"}]}`, model, model)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestChatStreamsAndAccumulates(t *testing.T) {
	srv := streamingChatServer(t, []string{"Hello", " there", "!"}, "phi3:mini")
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL})

	resp, err := p.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", resp.Content)
	assert.Equal(t, "phi3:mini", resp.Model)
	assert.Equal(t, 12, resp.PromptTokens)
	assert.Equal(t, 3, resp.CompletionTokens)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestChatSendsSystemPromptFirst(t *testing.T) {
	var gotMessages []ollamaMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMessages = req.Messages
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   "phi3:mini",
			Message: ollamaMessage{Role: "assistant", Content: "ok"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL})
	_, err := p.Chat(context.Background(), &ChatRequest{
		SystemPrompt: "You are ASTRA.",
		Messages:     []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	require.Len(t, gotMessages, 2)
	assert.Equal(t, "system", gotMessages[0].Role)
	assert.Equal(t, "You are ASTRA.", gotMessages[0].Content)
}

func TestChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL})
	_, err := p.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestChatFirstTokenTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL}, WithTimeoutConfig(TimeoutConfig{
		ConnectionTimeout: time.Second,
		FirstTokenTimeout: 100 * time.Millisecond,
		StreamIdleTimeout: time.Second,
	}))

	_, err := p.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first token")
}

func TestListModels(t *testing.T) {
	srv := streamingChatServer(t, nil, "mistral:latest")
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL})
	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mistral:latest"}, models)
	assert.True(t, p.Available())
}

func TestAvailableFalseWhenDown(t *testing.T) {
	p := NewOllamaProvider(&ProviderConfig{Endpoint: "http://127.0.0.1:1"})
	assert.False(t, p.Available())
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req["model"])
		fmt.Fprint(w, `{"embedding":[0.1,0.2,0.3]}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(&ProviderConfig{Endpoint: srv.URL})
	vec, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
	assert.InDelta(t, 0.2, vec[1], 1e-6)
}
