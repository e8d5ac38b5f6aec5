package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdata/retrieval/pkg/embedding"
	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/vectordb"
)

func newTestOrchestrator(store *fakeStore) *Orchestrator {
	return NewOrchestrator(OrchestratorParams{
		Store:    store,
		Embedder: embedding.NewClientWithProvider(fakeProvider{vector: []float32{0.1, 0.2, 0.3}}),
		Logger:   logger.NewNop(),
	})
}

func scored(id string, score float32, text string) vectordb.ScoredPoint {
	return vectordb.ScoredPoint{ID: id, Score: score, Payload: map[string]any{"text": text}}
}

func baseQuery(sources ...string) HybridQuery {
	return HybridQuery{
		Text:           "proxy timeout configuration",
		Sources:        sources,
		SemanticWeight: 1,
		KeywordWeight:  1,
	}
}

func TestSearchRejectsInvalidQueries(t *testing.T) {
	o := newTestOrchestrator(newFakeStore())
	ctx := context.Background()

	_, err := o.Search(ctx, HybridQuery{Sources: []string{"docs"}, SemanticWeight: 1})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = o.Search(ctx, HybridQuery{Text: "q", SemanticWeight: 1})
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = o.Search(ctx, HybridQuery{Text: "q", Sources: []string{"docs"}})
	assert.ErrorIs(t, err, ErrZeroWeights)

	_, err = o.Search(ctx, HybridQuery{Text: "q", Sources: []string{"docs"}, SemanticWeight: -1, KeywordWeight: 2})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	// Nothing reached the backend.
	assert.Empty(t, newFakeStore().searchCalls)
}

func TestSearchEmbeddingFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{scored("a", 0.9, "text")}

	o := NewOrchestrator(OrchestratorParams{
		Store:    store,
		Embedder: embedding.NewClientWithProvider(fakeProvider{err: errors.New("inference down")}),
		Logger:   logger.NewNop(),
	})

	_, err := o.Search(context.Background(), baseQuery("docs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.Empty(t, store.searchCalls, "no collection search after embedding failure")
}

func TestSearchMergesAcrossCollections(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{scored("d1", 0.9, "docs hit")}
	store.searchResults["ds_wiki"] = []vectordb.ScoredPoint{scored("w1", 0.95, "wiki hit")}

	o := newTestOrchestrator(store)
	hits, err := o.Search(context.Background(), baseQuery("docs", "wiki"))
	require.NoError(t, err)

	require.Len(t, hits, 2)
	// Semantic weight normalizes to 0.5, so 0.95 -> 0.475 beats 0.45.
	assert.Equal(t, "w1", hits[0].ID)
	assert.Equal(t, "d1", hits[1].ID)
	assert.InDelta(t, 0.475, hits[0].Score, 1e-7)
	assert.Equal(t, "ds_wiki", hits[0].Collection)
}

func TestSearchIsolatesCollectionFailures(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_ok"] = []vectordb.ScoredPoint{scored("a", 0.9, "fine")}
	store.searchResults["ds_bad"] = nil
	store.searchErr["ds_bad"] = errors.New("backend down")
	store.scanErr["ds_bad"] = errors.New("backend down")

	o := newTestOrchestrator(store)
	hits, err := o.Search(context.Background(), baseQuery("ok", "bad"))
	require.NoError(t, err, "one failing collection must not fail the query")

	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)
}

func TestSearchMissingCollectionIsEmpty(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{scored("a", 0.9, "fine")}

	o := newTestOrchestrator(store)
	hits, err := o.Search(context.Background(), baseQuery("docs", "never-indexed"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestSearchAllCollectionsFailYieldsEmpty(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = nil
	store.searchErr["ds_docs"] = errors.New("down")
	store.scanErr["ds_docs"] = errors.New("down")

	o := newTestOrchestrator(store)
	hits, err := o.Search(context.Background(), baseQuery("docs"))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchCancelledContextFailsQuery(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{scored("a", 0.9, "reachable")}

	o := newTestOrchestrator(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hits, err := o.Search(ctx, baseQuery("docs"))
	require.Error(t, err, "a cancelled query must not look like an empty result")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, hits)
}

func TestSearchSlowCollectionTimesOutAlone(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_fast"] = []vectordb.ScoredPoint{scored("f1", 0.9, "fast hit")}
	store.searchResults["ds_slow"] = []vectordb.ScoredPoint{scored("s1", 0.95, "never returned")}
	store.stalled["ds_slow"] = true

	o := NewOrchestrator(OrchestratorParams{
		Store:    store,
		Embedder: embedding.NewClientWithProvider(fakeProvider{vector: []float32{0.1, 0.2, 0.3}}),
		Config:   DefaultConfig().WithCollectionTimeout(30 * time.Millisecond),
		Logger:   logger.NewNop(),
	})

	hits, err := o.Search(context.Background(), baseQuery("fast", "slow"))
	require.NoError(t, err, "a timed-out collection must not fail the query")

	require.Len(t, hits, 1, "the slow collection contributes an empty result")
	assert.Equal(t, "f1", hits[0].ID)
}

func TestSearchThresholdIsInclusive(t *testing.T) {
	store := newFakeStore()
	// Semantic-only weights keep backend scores intact after fusion.
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{
		scored("at", 0.75, "exactly at threshold"),
		scored("below", 0.5, "well below"),
		scored("above", 0.875, "above"),
	}

	o := newTestOrchestrator(store)
	q := baseQuery("docs")
	q.KeywordWeight = 0
	q.SimilarityThreshold = 0.75

	hits, err := o.Search(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "above", hits[0].ID)
	assert.Equal(t, "at", hits[1].ID, "a hit scoring exactly the threshold is kept")
}

func TestSearchGlobalWindowing(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_a"] = []vectordb.ScoredPoint{
		scored("a1", 0.95, "x"), scored("a2", 0.5, "x"),
	}
	store.searchResults["ds_b"] = []vectordb.ScoredPoint{
		scored("b1", 0.9, "x"), scored("b2", 0.4, "x"),
	}

	o := newTestOrchestrator(store)
	q := baseQuery("a", "b")
	q.KeywordWeight = 0
	q.Limit = 2
	q.Offset = 0

	hits, err := o.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a1", hits[0].ID)
	assert.Equal(t, "b1", hits[1].ID, "window cuts the merged ranking, not per-collection lists")

	q.Offset = 2
	hits, err = o.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a2", hits[0].ID)
	assert.Equal(t, "b2", hits[1].ID)

	q.Offset = 10
	hits, err = o.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, hits, "offset past the end yields empty, not an error")
}

func TestSearchTieBreakFollowsSourceOrder(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_a"] = []vectordb.ScoredPoint{scored("same", 0.8, "x")}
	store.searchResults["ds_b"] = []vectordb.ScoredPoint{scored("same", 0.8, "x")}

	o := newTestOrchestrator(store)
	q := baseQuery("b", "a")
	q.KeywordWeight = 0

	hits, err := o.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "ds_b", hits[0].Collection, "equal scores order by query source position")
	assert.Equal(t, "ds_a", hits[1].Collection)
}

func TestSearchFusesBranchesPerCollection(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{
		scored("both", 0.8, "proxy timeout configuration notes"),
		scored("semonly", 0.7, "unrelated semantic neighbor"),
	}
	store.scanResults["ds_docs"] = []vectordb.Point{
		{ID: "both", Payload: map[string]any{"text": "proxy timeout configuration notes"}},
		{ID: "kwonly", Payload: map[string]any{"text": "proxy timeout configuration reference"}},
	}

	o := newTestOrchestrator(store)
	hits, err := o.Search(context.Background(), baseQuery("docs"))
	require.NoError(t, err)

	byID := map[string]Hit{}
	for _, h := range hits {
		byID[h.ID] = h
	}
	require.Contains(t, byID, "both")
	require.Contains(t, byID, "semonly")
	require.Contains(t, byID, "kwonly")

	assert.Equal(t, SourceHybrid, byID["both"].Source)
	assert.Equal(t, SourceSemantic, byID["semonly"].Source)
	assert.Equal(t, SourceKeyword, byID["kwonly"].Source)

	// both: 0.8*0.5 semantic + 1.0*0.5 keyword (all three tokens hit).
	assert.InDelta(t, 0.9, byID["both"].Score, 1e-7)
	assert.Greater(t, byID["both"].Score, byID["semonly"].Score)
}

func TestSearchStopWordQueryDegradesToSemantic(t *testing.T) {
	store := newFakeStore()
	store.searchResults["ds_docs"] = []vectordb.ScoredPoint{scored("a", 0.8, "anything")}
	store.scanResults["ds_docs"] = []vectordb.Point{
		{ID: "k", Payload: map[string]any{"text": "anything"}},
	}

	o := newTestOrchestrator(store)
	q := baseQuery("docs")
	q.Text = "what is it about"

	hits, err := o.Search(context.Background(), q)
	require.NoError(t, err)

	// All stop words: keyword branch contributes nothing, semantic
	// scores come through scaled by the normalized semantic weight.
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, SourceSemantic, hits[0].Source)
	assert.InDelta(t, 0.4, hits[0].Score, 1e-7)
	assert.Empty(t, store.scanCalls, "keyword branch must be skipped without tokens")
}

func TestSearchLimitDefaultsAndClamp(t *testing.T) {
	store := newFakeStore()
	points := make([]vectordb.ScoredPoint, 0, 150)
	for i := 0; i < 150; i++ {
		points = append(points, scored(string(rune('a'))+fmtInt(i), float32(150-i)/1000, "x"))
	}
	store.searchResults["ds_docs"] = points

	o := newTestOrchestrator(store)
	q := baseQuery("docs")
	q.KeywordWeight = 0

	hits, err := o.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, hits, DefaultLimit, "unset limit falls back to the default")

	q.Limit = 10000
	hits, err = o.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, hits, MaxLimit, "oversized limit clamps to the maximum")
}

func fmtInt(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "000"
	}
	return string([]byte{digits[i/100%10], digits[i/10%10], digits[i%10]})
}
