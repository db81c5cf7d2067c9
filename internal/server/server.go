// Package server exposes the assistant over HTTP: chat, capability toggles,
// tool execution with approval, memory inspection, model control, and a
// websocket chat stream.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/astralabs/astra/internal/brain"
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the host:port to bind.
	Addr string

	// ShutdownTimeout is the graceful shutdown timeout.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible local defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "127.0.0.1:5000",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serializes access to a shared brain behind an HTTP API. The brain
// is not concurrency safe, so every pipeline call holds the mutex.
type Server struct {
	cfg   *Config
	brain *brain.Brain
	mu    sync.Mutex
	http  *http.Server
	log   zerolog.Logger
}

// New creates a server around a brain.
func New(cfg *Config, b *brain.Brain, logger zerolog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:   cfg,
		brain: b,
		log:   logger.With().Str("component", "server").Logger(),
	}
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.routes(),
	}
	return s
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /capabilities", s.handleGetCapabilities)
	mux.HandleFunc("PUT /capabilities/{name}", s.handleSetCapability)

	mux.HandleFunc("POST /execute", s.handleExecute)

	mux.HandleFunc("GET /memory", s.handleGetMemory)
	mux.HandleFunc("POST /memory", s.handleUpdateMemory)
	mux.HandleFunc("DELETE /memory", s.handleClearMemory)
	mux.HandleFunc("GET /memory/facts", s.handleGetFacts)
	mux.HandleFunc("GET /memory/summary", s.handleGetSummaries)
	mux.HandleFunc("GET /memory/tasks", s.handleGetTasks)

	mux.HandleFunc("GET /model/info", s.handleModelInfo)
	mux.HandleFunc("POST /model/switch", s.handleModelSwitch)
	mux.HandleFunc("GET /model/available", s.handleModelAvailable)

	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	return mux
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
