package search

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fathomdata/retrieval/pkg/logger"
)

func newTestReranker(now time.Time) *Reranker {
	r := NewReranker(logger.NewNop())
	r.now = func() time.Time { return now }
	return r
}

func textHit(id string, score float64, text string) Hit {
	return Hit{ID: id, Score: score, Payload: map[string]any{"text": text}}
}

func TestRerankExactPhraseBoost(t *testing.T) {
	r := newTestReranker(time.Now())
	hits := []Hit{
		textHit("verbatim", 0.5, "the Connection Pool settings live here"),
		textHit("scattered", 0.5, "pool of threads for each connection"),
	}

	out := r.Rerank("connection pool", hits)
	if out[0].ID != "verbatim" {
		t.Fatalf("top hit = %s, want verbatim phrase match promoted", out[0].ID)
	}
	want := 0.5 * exactPhraseBoost * completenessBoost("the Connection Pool settings live here")
	if math.Abs(out[0].Score-want) > 1e-12 {
		t.Errorf("boosted score = %v, want %v", out[0].Score, want)
	}
}

func TestRerankCompletenessBounded(t *testing.T) {
	longText := strings.Repeat("word ", 5000)
	if boost := completenessBoost(longText); boost != completenessCeiling {
		t.Errorf("completeness boost = %v, want capped at %v", boost, completenessCeiling)
	}
	if boost := completenessBoost("ten words here"); math.Abs(boost-1.003) > 1e-12 {
		t.Errorf("three-word boost = %v, want 1.003", boost)
	}
}

func TestRerankRecency(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r := newTestReranker(now)

	fresh := textHit("fresh", 0.5, "irrelevant words")
	fresh.Payload["created_at"] = now.Add(-24 * time.Hour).Format(time.RFC3339)
	stale := textHit("stale", 0.5, "irrelevant words")
	stale.Payload["created_at"] = now.AddDate(-1, 0, 0).Format(time.RFC3339)

	out := r.Rerank("unmatched query", []Hit{stale, fresh})
	if out[0].ID != "fresh" {
		t.Fatalf("top hit = %s, want the recent document", out[0].ID)
	}

	// One day old: multiplier 1.15 - 1/100 = 1.14.
	base := 0.5 * completenessBoost("irrelevant words")
	if math.Abs(out[0].Score-base*1.14) > 1e-9 {
		t.Errorf("fresh score = %v, want %v", out[0].Score, base*1.14)
	}
	// A year old: boost floors at 1.
	if math.Abs(out[1].Score-base) > 1e-9 {
		t.Errorf("stale score = %v, want unboosted %v", out[1].Score, base)
	}
}

func TestRerankLenientOnTimestamps(t *testing.T) {
	r := newTestReranker(time.Now())

	missing := textHit("missing", 0.5, "plain words")
	malformed := textHit("malformed", 0.5, "plain words")
	malformed.Payload["created_at"] = "not-a-date"

	out := r.Rerank("unmatched query", []Hit{missing, malformed})
	if out[0].Score != out[1].Score {
		t.Errorf("missing (%v) and malformed (%v) timestamps should both be neutral",
			out[0].Score, out[1].Score)
	}
}

func TestRerankPreservesHitSet(t *testing.T) {
	r := newTestReranker(time.Now())
	hits := []Hit{
		textHit("a", 0.9, "some words"),
		textHit("b", 0.1, "other words entirely"),
	}

	out := r.Rerank("query", hits)
	if len(out) != len(hits) {
		t.Fatalf("rerank changed hit count: %d -> %d", len(hits), len(out))
	}
	ids := map[string]bool{}
	for _, h := range out {
		ids[h.ID] = true
	}
	if !ids["a"] || !ids["b"] {
		t.Error("rerank changed the id set")
	}
}

func TestRerankDoesNotMutateInput(t *testing.T) {
	r := newTestReranker(time.Now())
	hits := []Hit{textHit("a", 0.5, "the query phrase appears")}

	r.Rerank("query phrase", hits)
	if hits[0].Score != 0.5 {
		t.Errorf("input slice mutated: score = %v", hits[0].Score)
	}
}

func TestRerankEmpty(t *testing.T) {
	r := newTestReranker(time.Now())
	if out := r.Rerank("query", nil); len(out) != 0 {
		t.Errorf("got %d hits from empty input", len(out))
	}
}
