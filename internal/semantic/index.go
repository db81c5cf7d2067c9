// Package semantic gives the assistant long-term recall: facts and
// conversation exchanges are embedded and stored in a SQLite vector index,
// then surfaced into the model's context when relevant.
package semantic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/liliang-cn/sqvect/v2/pkg/core"
	"github.com/liliang-cn/sqvect/v2/pkg/sqvect"
	"github.com/rs/zerolog"
)

// Retrieval tuning. Facts need a lower bar than whole exchanges because
// their embeddings are denser.
const (
	TopK              = 5
	FactThreshold     = 0.70
	ExchangeThreshold = 0.75

	// A fact hit at or above the boost threshold lifts the reply's
	// confidence to BoostedConfidence.
	BoostThreshold    = 0.70
	BoostedConfidence = 0.85

	maxFactHits     = 3
	maxExchangeHits = 2
)

// Embedder produces a vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Hit is one retrieved memory.
type Hit struct {
	Text   string
	Score  float64
	Source string
}

// Index wraps the vector store. IDs are content-addressed so re-indexing the
// same text is idempotent.
type Index struct {
	db       *sqvect.DB
	store    core.Store
	embedder Embedder
	log      zerolog.Logger
}

// Open creates or opens the index at path.
func Open(path string, embedder Embedder, log zerolog.Logger) (*Index, error) {
	db, err := sqvect.Open(sqvect.Config{
		Path:         path,
		SimilarityFn: core.CosineSimilarity,
	})
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}
	return &Index{
		db:       db,
		store:    db.Vector(),
		embedder: embedder,
		log:      log.With().Str("component", "semantic").Logger(),
	}, nil
}

// Close releases the underlying store.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// IndexFact stores an extracted user fact.
func (ix *Index) IndexFact(ctx context.Context, factText, factType, userName string) error {
	return ix.upsert(ctx, factText, "fact", map[string]string{
		"type": factType,
		"user": userName,
	})
}

// IndexExchange stores one conversation round trip, but only when both
// sides are substantive.
func (ix *Index) IndexExchange(ctx context.Context, userMsg, assistantReply, userName string) error {
	if len(strings.TrimSpace(userMsg)) <= 20 || len(strings.TrimSpace(assistantReply)) <= 20 {
		return nil
	}
	combined := fmt.Sprintf("User: %s\nASTRA: %s", userMsg, assistantReply)
	return ix.upsert(ctx, combined, "exchange", map[string]string{"user": userName})
}

func (ix *Index) upsert(ctx context.Context, text, source string, metadata map[string]string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	vector, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed text: %w", err)
	}

	metadata["source"] = source
	if err := ix.store.Upsert(ctx, &core.Embedding{
		ID:       contentID(text),
		Vector:   vector,
		Content:  text,
		Metadata: metadata,
	}); err != nil {
		return fmt.Errorf("upsert embedding: %w", err)
	}

	ix.log.Debug().Str("source", source).Str("text", truncate(text, 60)).Msg("indexed")
	return nil
}

// Search returns fact and exchange hits for the query, each filtered by its
// own similarity threshold.
func (ix *Index) Search(ctx context.Context, query string) (facts, exchanges []Hit, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, nil
	}

	vector, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := ix.store.Search(ctx, vector, core.SearchOptions{TopK: TopK})
	if err != nil {
		return nil, nil, fmt.Errorf("vector search: %w", err)
	}

	for _, r := range results {
		hit := Hit{Text: r.Content, Score: r.Score, Source: r.Metadata["source"]}
		switch hit.Source {
		case "exchange":
			if hit.Score >= ExchangeThreshold {
				exchanges = append(exchanges, hit)
			}
		default:
			if hit.Score >= FactThreshold {
				facts = append(facts, hit)
			}
		}
	}
	return facts, exchanges, nil
}

func contentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
