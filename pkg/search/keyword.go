package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// maxContentLength is the document length above which keyword scores
// are attenuated. A ten-token match in a short paragraph is a stronger
// signal than the same ten tokens scattered through a book chapter.
const maxContentLength = 1000

// KeywordExecutor runs the lexical branch of the hybrid pipeline
// against one collection: a filtered scan for candidate documents
// followed by local match-density scoring.
type KeywordExecutor struct {
	store vectordb.Store
}

func NewKeywordExecutor(store vectordb.Store) *KeywordExecutor {
	return &KeywordExecutor{store: store}
}

// Search retrieves documents matching any of the tokens in any of the
// given payload fields, scores them by match density, and returns the
// top limit hits in descending score order.
//
// With no tokens there is nothing to match and the result is empty.
// As with the semantic branch, a missing collection is a normal
// condition and yields an empty result.
func (e *KeywordExecutor) Search(ctx context.Context, collection string, tokens []string, fields []string, limit int) ([]Hit, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	exists, err := e.store.CollectionExists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("checking collection %q: %w", collection, err)
	}
	if !exists {
		return nil, nil
	}

	// Disjunctive filter: a document containing any token in any field
	// is a candidate. Scoring below rewards documents matching more of
	// the tokens.
	conditions := make([]vectordb.FilterCondition, 0, len(tokens)*len(fields))
	for _, field := range fields {
		for _, token := range tokens {
			conditions = append(conditions, vectordb.NewMatchText(field, token))
		}
	}

	points, err := e.store.FilteredScan(ctx, vectordb.ScanRequest{
		Collection: collection,
		Filter:     vectordb.NewFilterSet(vectordb.Should(conditions...)),
		Limit:      scanCap(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("filtered scan in %q: %w", collection, err)
	}

	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		text, ok := vectordb.TextOf(p.Payload)
		if !ok {
			continue
		}
		score := matchScore(text, tokens)
		if score == 0 {
			continue
		}
		hits = append(hits, Hit{
			ID:         p.ID,
			Score:      score,
			Payload:    p.Payload,
			Source:     SourceKeyword,
			Collection: collection,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// scanCap bounds how many candidates the filtered scan fetches. The
// backend filter matches on presence, not density, so the scan
// over-fetches relative to limit to leave scoring room to reorder.
func scanCap(limit int) int {
	if c := 4 * limit; c > 100 {
		return c
	}
	return 100
}

// matchScore rates how well a document's text matches the query
// tokens, in (0, 1]. It is the product of two factors:
//
//   - match density: total whole-word occurrences of the tokens,
//     divided by the token count, capped at 1. A document containing
//     every token at least once saturates this factor.
//   - length normalization: min(1, maxContentLength/len(text)),
//     attenuating matches diluted across very long documents.
//
// Zero means no token occurs at all; such documents are dropped even
// though the backend filter admitted them on another field.
func matchScore(text string, tokens []string) float64 {
	if len(tokens) == 0 || len(text) == 0 {
		return 0
	}

	occurrences := 0
	for _, word := range splitWords(text) {
		for _, token := range tokens {
			if word == token {
				occurrences++
			}
		}
	}
	if occurrences == 0 {
		return 0
	}

	density := float64(occurrences) / float64(len(tokens))
	if density > 1 {
		density = 1
	}
	lengthNorm := float64(maxContentLength) / float64(len(text))
	if lengthNorm > 1 {
		lengthNorm = 1
	}
	return density * lengthNorm
}
