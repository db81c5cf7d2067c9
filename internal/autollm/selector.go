// Package autollm picks the right local model for each query: fast small
// models for chat, larger ones for technical work, with availability-based
// fallback when a preferred model is not pulled.
package autollm

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Profile describes what a model is good at.
type Profile struct {
	Strengths []string `json:"strengths"`
	Speed     string   `json:"speed"`
	Size      string   `json:"size"`
	BestFor   []string `json:"best_for"`
}

// Profiles for the models the assistant runs locally.
var Profiles = map[string]Profile{
	"phi3:mini": {
		Strengths: []string{"general", "chat", "quick", "friendly"},
		Speed:     "fast",
		Size:      "2.2GB",
		BestFor:   []string{"casual", "memory", "shortcuts", "simple_questions"},
	},
	"llama3.2:3b": {
		Strengths: []string{"reasoning", "analysis", "structured"},
		Speed:     "fast",
		Size:      "2.0GB",
		BestFor:   []string{"reasoning", "step_by_step", "analysis"},
	},
	"mistral:latest": {
		Strengths: []string{"technical", "coding", "detailed", "factual"},
		Speed:     "slow",
		Size:      "4.4GB",
		BestFor:   []string{"technical", "coding", "research", "detailed_explanation"},
	},
}

// intentModels maps classified intent to the preferred model.
var intentModels = map[string]string{
	"casual":          "phi3:mini",
	"memory":          "phi3:mini",
	"greeting":        "phi3:mini",
	"simple_question": "phi3:mini",
	"reasoning":       "llama3.2:3b",
	"step_by_step":    "llama3.2:3b",
	"analysis":        "llama3.2:3b",
	"technical":       "mistral:latest",
	"coding":          "mistral:latest",
	"research":        "mistral:latest",
	"web_search":      "mistral:latest",
}

// fallbackOrder is tried smallest-first when the preferred model is missing.
var fallbackOrder = []string{"phi3:mini", "llama3.2:3b", "mistral:latest"}

// ModelLister is the slice of the LLM provider the selector needs.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Selector picks models by intent and tracks the current one.
type Selector struct {
	mu           sync.RWMutex
	defaultModel string
	currentModel string
	available    []string
	log          zerolog.Logger
}

// NewSelector probes the server for available models. Unknown or unreachable
// servers leave just the default model.
func NewSelector(ctx context.Context, lister ModelLister, defaultModel string, log zerolog.Logger) *Selector {
	if defaultModel == "" {
		defaultModel = "phi3:mini"
	}
	s := &Selector{
		defaultModel: defaultModel,
		currentModel: defaultModel,
		log:          log.With().Str("component", "autollm").Logger(),
	}

	s.available = s.probe(ctx, lister)
	s.log.Info().Strs("models", s.available).Str("default", defaultModel).Msg("model selector ready")
	return s
}

func (s *Selector) probe(ctx context.Context, lister ModelLister) []string {
	if lister == nil {
		return []string{s.defaultModel}
	}
	models, err := lister.ListModels(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not fetch models, assuming default only")
		return []string{s.defaultModel}
	}

	// Normalize server names against the known profiles.
	var normalized []string
	for _, m := range models {
		for known := range Profiles {
			if strings.Contains(m, strings.TrimSuffix(known, ":latest")) || strings.Contains(m, known) {
				normalized = append(normalized, known)
			}
		}
	}
	if len(normalized) == 0 {
		return []string{s.defaultModel}
	}
	return dedupe(normalized)
}

// Select picks the best available model for the intent, walking the fallback
// chain when the preferred one is missing.
func (s *Selector) Select(intent string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	preferred, ok := intentModels[intent]
	if !ok {
		preferred = s.defaultModel
	}

	if s.has(preferred) {
		s.currentModel = preferred
		return preferred
	}

	for _, model := range fallbackOrder {
		if s.has(model) {
			s.log.Warn().Str("preferred", preferred).Str("fallback", model).Msg("preferred model unavailable")
			s.currentModel = model
			return model
		}
	}
	return s.defaultModel
}

// ClassifyIntent buckets a query with keyword checks, most specific first.
func ClassifyIntent(query string) string {
	q := strings.ToLower(query)

	for _, w := range []string{"code", "debug", "function", "algorithm", "implement", "syntax", "error", "bug", "class", "import"} {
		if strings.Contains(q, w) {
			return "coding"
		}
	}
	for _, w := range []string{"explain", "how does", "what is", "difference between", "compare", "architecture"} {
		if strings.Contains(q, w) {
			return "technical"
		}
	}
	for _, w := range []string{"search", "find", "latest", "news", "current", "today", "recent", "who is", "when did"} {
		if strings.Contains(q, w) {
			return "research"
		}
	}
	for _, w := range []string{"why", "reason", "analyze", "think", "step by step", "pros and cons"} {
		if strings.Contains(q, w) {
			return "reasoning"
		}
	}
	return "casual"
}

// Current returns the model picked by the last Select or Force call.
func (s *Selector) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentModel
}

// Available returns the probed model list.
func (s *Selector) Available() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.available))
	copy(out, s.available)
	return out
}

// Force pins a specific model. Returns false when it is not available.
func (s *Selector) Force(model string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has(model) {
		return false
	}
	s.currentModel = model
	return true
}

// Info reports the current model, its profile, and the available set.
func (s *Selector) Info() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"current":   s.currentModel,
		"available": append([]string(nil), s.available...),
		"profile":   Profiles[s.currentModel],
	}
}

func (s *Selector) has(model string) bool {
	for _, m := range s.available {
		if m == model {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
