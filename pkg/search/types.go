package search

import (
	"time"
)

// Source identifies which retrieval strategy produced a hit.
type Source string

const (
	SourceSemantic Source = "semantic"
	SourceKeyword  Source = "keyword"
	// SourceHybrid marks a hit found by both strategies and merged.
	SourceHybrid Source = "hybrid"
)

// Hit is a single retrieved document with its relevance score.
type Hit struct {
	// ID is the backend point id of the document.
	ID string

	// Score is the relevance score. For a hit coming out of fusion it
	// is the weighted sum of the per-branch scores; reranking may
	// scale it further. Scores are comparable within one query only.
	Score float64

	// Payload is the stored document payload (text, metadata, ...).
	Payload map[string]any

	// Source records which branch (or both) surfaced the document.
	Source Source

	// Collection is the physical collection the hit came from.
	Collection string
}

// HybridQuery describes one hybrid retrieval request.
//
// Sources are logical data-source identifiers; the orchestrator maps
// each to a physical collection name via CollectionName. Their order
// is significant: it is the secondary sort key for hits with equal
// scores, making result order deterministic.
type HybridQuery struct {
	// Text is the natural-language query. Must be non-empty.
	Text string

	// Sources is the ordered list of data-source identifiers to
	// search. Must be non-empty.
	Sources []string

	// SemanticWeight and KeywordWeight control the relative influence
	// of the two branches. Both must be >= 0 and they must not both be
	// zero; they are normalized to sum to 1 before fusion, so only
	// their ratio matters.
	SemanticWeight float64
	KeywordWeight  float64

	// SimilarityThreshold drops fused hits scoring below it. The
	// comparison is inclusive: a hit scoring exactly the threshold is
	// kept. Zero keeps everything.
	SimilarityThreshold float64

	// Limit caps the number of hits returned after global merging.
	// Zero or negative selects DefaultLimit; values above MaxLimit are
	// clamped.
	Limit int

	// Offset skips that many hits of the globally sorted list before
	// applying Limit. Negative is treated as zero.
	Offset int

	// KeywordFields are the payload fields the keyword branch matches
	// against. Empty selects the default text and content fields.
	KeywordFields []string

	// Rerank enables the secondary content-derived scoring pass.
	Rerank bool
}

// Validate reports whether the query is well-formed. All violations
// are configuration errors: the orchestrator rejects the query before
// any backend call is made.
func (q *HybridQuery) Validate() error {
	if q.Text == "" {
		return ErrEmptyQuery
	}
	if len(q.Sources) == 0 {
		return ErrNoSources
	}
	if q.SemanticWeight < 0 || q.KeywordWeight < 0 {
		return ErrNegativeWeight
	}
	if q.SemanticWeight == 0 && q.KeywordWeight == 0 {
		return ErrZeroWeights
	}
	return nil
}

// Document is one unit of indexable content.
type Document struct {
	// ID is the stable point id. Qdrant requires a UUID or an unsigned
	// integer rendered as a string.
	ID string

	// Text is the content that gets embedded and keyword-indexed.
	Text string

	// Metadata is caller-defined structured data stored alongside the
	// text under the metadata payload namespace.
	Metadata map[string]any

	// CreatedAt feeds the recency reranking signal. The zero value
	// means unknown and is stored as absent.
	CreatedAt time.Time
}
