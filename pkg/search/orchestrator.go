package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/fathomdata/retrieval/pkg/embedding"
	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/metrics"
	"github.com/fathomdata/retrieval/pkg/tracer"
	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// Orchestrator runs hybrid queries across many collections: it embeds
// the query once, fans the two-branch pipeline out per collection,
// isolates failures, and merges everything into one ranked window.
type Orchestrator struct {
	semantic *SemanticExecutor
	keyword  *KeywordExecutor
	embedder *embedding.Client
	reranker *Reranker
	cfg      *Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	tracer   *tracer.Tracer
}

// OrchestratorParams collects the orchestrator's dependencies.
// Metrics and Tracer are optional; without them the orchestrator
// simply does not report.
type OrchestratorParams struct {
	fx.In

	Store    vectordb.Store
	Embedder *embedding.Client
	Config   *Config `optional:"true"`
	Logger   *logger.Logger
	Metrics  *metrics.Metrics `optional:"true"`
	Tracer   *tracer.Tracer   `optional:"true"`
}

func NewOrchestrator(p OrchestratorParams) *Orchestrator {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		semantic: NewSemanticExecutor(p.Store),
		keyword:  NewKeywordExecutor(p.Store),
		embedder: p.Embedder,
		reranker: NewReranker(p.Logger),
		cfg:      cfg,
		log:      p.Logger,
		metrics:  p.Metrics,
		tracer:   p.Tracer,
	}
}

// Search runs one hybrid query and returns the globally ranked,
// thresholded, offset/limited hits.
//
// It fails fast on three conditions only: an invalid query (matched by
// the package's Err* configuration errors), an embedding failure
// (ErrEmbedding), and cancellation of the caller's context. Everything
// downstream degrades per collection: a collection whose backend errors
// or times out contributes an empty result, and the remaining
// collections' hits are returned as usual.
func (o *Orchestrator) Search(ctx context.Context, q HybridQuery) ([]Hit, error) {
	start := time.Now()

	if err := q.Validate(); err != nil {
		o.countQuery("config_error")
		return nil, err
	}
	applyDefaults(&q, o.cfg)

	ws, wk, err := NormalizeWeights(q.SemanticWeight, q.KeywordWeight)
	if err != nil {
		o.countQuery("config_error")
		return nil, err
	}

	ctx, span := o.startSpan(ctx, "search.hybrid")
	defer o.endSpan(span)
	o.spanAttrs(span, map[string]interface{}{
		"search.sources": len(q.Sources),
		"search.limit":   q.Limit,
		"search.rerank":  q.Rerank,
	})

	vector, err := o.embedder.Embed(ctx, q.Text)
	if err != nil {
		o.countQuery("embedding_error")
		o.recordSpanError(span, err)
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	tokens := ExtractKeywords(q.Text)

	// The scan fetches enough per collection to fill the global window
	// even when a single collection dominates the final ranking.
	perCollection := q.Offset + q.Limit

	results := make([][]Hit, len(q.Sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range q.Sources {
		collection := CollectionName(source)
		g.Go(func() error {
			results[i] = o.searchCollection(gctx, collection, q, vector, tokens, perCollection, ws, wk)
			// Per-collection failures degrade inside searchCollection;
			// only cancellation of the caller's context fails the query.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		o.countQuery("cancelled")
		o.recordSpanError(span, err)
		return nil, fmt.Errorf("hybrid query cancelled: %w", err)
	}

	var merged []Hit
	for _, hits := range results {
		merged = append(merged, hits...)
	}
	fusedTotal := len(merged)
	merged = o.rank(merged, q)

	o.observe(merged, fusedTotal, start)
	o.spanAttrs(span, map[string]interface{}{"search.hits": len(merged)})
	return merged, nil
}

// searchCollection runs the full two-branch pipeline for one
// collection under its own timeout. It never returns an error: every
// failure inside it is logged, counted, and degraded to an empty or
// partial result so sibling collections are unaffected.
func (o *Orchestrator) searchCollection(ctx context.Context, collection string, q HybridQuery, vector []float32, tokens []string, limit int, ws, wk float64) []Hit {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.collectionTimeout())
	defer cancel()

	ctx, span := o.startSpan(ctx, "search.collection")
	defer o.endSpan(span)
	o.spanAttrs(span, map[string]interface{}{"search.target": collection})

	// Branch failures never fail the pair: each one degrades to an
	// empty result through branchHits, so the fuse sees whatever the
	// surviving branch produced.
	var semanticHits, keywordHits []Hit
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hits, err := o.semantic.Search(ctx, collection, vector, nil, limit, 0)
		semanticHits = o.branchHits(hits, err, "semantic", collection)
	}()
	go func() {
		defer wg.Done()
		hits, err := o.keyword.Search(ctx, collection, tokens, q.KeywordFields, limit)
		keywordHits = o.branchHits(hits, err, "keyword", collection)
	}()
	wg.Wait()

	fused := FuseHits(semanticHits, keywordHits, ws, wk)
	if q.Rerank {
		fused = o.reranker.Rerank(q.Text, fused)
	}
	return fused
}

// branchHits unwraps one branch result: on error it logs, bumps the
// failure counter, and substitutes an empty result.
func (o *Orchestrator) branchHits(hits []Hit, err error, branch, collection string) []Hit {
	if err == nil {
		return hits
	}
	o.log.Warn("search branch failed, substituting empty result", err, map[string]interface{}{
		"branch":     branch,
		"collection": collection,
		"timeout":    errors.Is(err, context.DeadlineExceeded),
	})
	if o.metrics != nil {
		o.metrics.BranchFailuresTotal.WithLabelValues(branch).Inc()
	}
	return nil
}

// rank globally sorts the merged hits, applies the inclusive
// similarity threshold, and cuts the offset/limit window.
//
// Ties break first on the position of the hit's source in the query
// (earlier sources win), then on id, so equal-scored results are
// ordered deterministically across runs.
func (o *Orchestrator) rank(hits []Hit, q HybridQuery) []Hit {
	order := make(map[string]int, len(q.Sources))
	for i, source := range q.Sources {
		collection := CollectionName(source)
		if _, ok := order[collection]; !ok {
			order[collection] = i
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		oi, oj := order[hits[i].Collection], order[hits[j].Collection]
		if oi != oj {
			return oi < oj
		}
		return hits[i].ID < hits[j].ID
	})

	if q.SimilarityThreshold > 0 {
		kept := hits[:0]
		for _, h := range hits {
			if h.Score >= q.SimilarityThreshold {
				kept = append(kept, h)
			}
		}
		hits = kept
	}

	if q.Offset >= len(hits) {
		return nil
	}
	hits = hits[q.Offset:]
	if len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits
}

// applyDefaults fills unset query knobs from the engine config.
func applyDefaults(q *HybridQuery, cfg *Config) {
	if q.Limit <= 0 {
		q.Limit = cfg.defaultLimit()
	}
	if q.Limit > cfg.maxLimit() {
		q.Limit = cfg.maxLimit()
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.KeywordFields) == 0 {
		q.KeywordFields = defaultKeywordFields
	}
}

func (o *Orchestrator) countQuery(status string) {
	if o.metrics != nil {
		o.metrics.HybridQueriesTotal.WithLabelValues(status).Inc()
	}
}

func (o *Orchestrator) observe(hits []Hit, fusedTotal int, start time.Time) {
	status := "ok"
	if len(hits) == 0 {
		status = "empty"
	}
	o.countQuery(status)
	if o.metrics != nil {
		o.metrics.QueryDuration.Observe(time.Since(start).Seconds())
		o.metrics.FusedHits.Observe(float64(fusedTotal))
	}
	o.log.Debug("hybrid query finished", nil, map[string]interface{}{
		"status":      status,
		"hits":        len(hits),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
