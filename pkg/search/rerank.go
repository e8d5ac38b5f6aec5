package search

import (
	"sort"
	"strings"
	"time"

	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/vectordb"
)

const (
	exactPhraseBoost    = 1.2
	completenessCeiling = 1.3
	recencyCeiling      = 1.15
)

// Reranker applies secondary content-derived signals on top of fused
// scores. All three signals are bounded multiplicative boosts, so
// reranking can promote hits but never zero one out, and it never
// changes which documents are in the list.
type Reranker struct {
	log *logger.Logger
	now func() time.Time
}

func NewReranker(log *logger.Logger) *Reranker {
	return &Reranker{log: log, now: time.Now}
}

// Rerank returns a new slice with adjusted scores, re-sorted
// descending with ties broken by id. The input is not mutated.
//
// The signals:
//
//   - exact phrase: the full query appearing verbatim in the document
//     text (case-insensitive) multiplies the score by 1.2.
//   - completeness: longer documents get up to a 1.3x boost, scaling
//     with word count (saturating at 300 words).
//   - recency: documents younger than 15 days get up to a 1.15x
//     boost, decaying linearly with age. Missing or malformed
//     timestamps leave the score untouched; a document is never
//     penalized for lacking one.
func (r *Reranker) Rerank(query string, hits []Hit) []Hit {
	if len(hits) == 0 {
		return hits
	}
	phrase := strings.ToLower(strings.TrimSpace(query))
	now := r.now()

	out := make([]Hit, len(hits))
	copy(out, hits)
	for i := range out {
		text, _ := vectordb.TextOf(out[i].Payload)
		multiplier := 1.0
		if phrase != "" && strings.Contains(strings.ToLower(text), phrase) {
			multiplier *= exactPhraseBoost
		}
		multiplier *= completenessBoost(text)
		multiplier *= r.recencyBoost(out[i], now)
		out[i].Score *= multiplier
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// completenessBoost is min(1 + wordCount/1000, 1.3): longer documents
// tend to be more complete answers, up to a point.
func completenessBoost(text string) float64 {
	boost := 1 + float64(len(splitWords(text)))/1000
	if boost > completenessCeiling {
		return completenessCeiling
	}
	return boost
}

// recencyBoost is max(1, 1.15 - ageInDays/100). Hits with no parsable
// creation timestamp get the neutral multiplier; the malformed case
// is logged at debug so bad ingest data stays visible.
func (r *Reranker) recencyBoost(h Hit, now time.Time) float64 {
	created, ok := vectordb.TimestampOf(h.Payload)
	if !ok {
		if _, present := h.Payload[vectordb.PayloadFieldCreatedAt]; present {
			r.log.Debug("unparsable creation timestamp, skipping recency boost", nil, map[string]interface{}{
				"id":         h.ID,
				"collection": h.Collection,
			})
		}
		return 1
	}
	ageDays := now.Sub(created).Hours() / 24
	boost := recencyCeiling - ageDays/100
	if boost < 1 {
		return 1
	}
	return boost
}
