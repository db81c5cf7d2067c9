package semantic

import (
	"context"
	"fmt"
	"strings"
)

// BuildContext runs semantic search and returns a structured context block
// for the system prompt plus a confidence boost. The boost is zero unless a
// fact hit clears the boost threshold. Facts are listed before exchanges so
// the model weighs them more.
func (ix *Index) BuildContext(ctx context.Context, query, userName string) (string, float64) {
	facts, exchanges, err := ix.Search(ctx, query)
	if err != nil {
		ix.log.Warn().Err(err).Msg("semantic search failed")
		return "", 0
	}
	if len(facts) == 0 && len(exchanges) == 0 {
		return "", 0
	}

	boost := 0.0
	var lines []string
	lines = append(lines, fmt.Sprintf("\nRelevant facts about %s:", userName))

	if len(facts) > maxFactHits {
		facts = facts[:maxFactHits]
	}
	for _, hit := range facts {
		lines = append(lines, "- "+hit.Text)
		ix.log.Info().Str("source", "fact").Float64("score", hit.Score).
			Str("text", truncate(hit.Text, 60)).Msg("semantic hit")
		if hit.Score >= BoostThreshold {
			boost = BoostedConfidence
		}
	}

	if len(exchanges) > 0 {
		lines = append(lines, "\nRecent relevant context:")
		if len(exchanges) > maxExchangeHits {
			exchanges = exchanges[:maxExchangeHits]
		}
		for _, hit := range exchanges {
			lines = append(lines, "- "+truncate(hit.Text, 120))
			ix.log.Info().Str("source", "exchange").Float64("score", hit.Score).
				Str("text", truncate(hit.Text, 60)).Msg("semantic hit")
		}
	}

	return strings.Join(lines, "\n"), boost
}
