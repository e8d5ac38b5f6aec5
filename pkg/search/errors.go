package search

import "errors"

// Configuration errors. The orchestrator returns these before touching
// any backend; callers can match them with errors.Is.
var (
	ErrEmptyQuery     = errors.New("search: query text is empty")
	ErrNoSources      = errors.New("search: no target sources")
	ErrNegativeWeight = errors.New("search: weights must be non-negative")
	ErrZeroWeights    = errors.New("search: semantic and keyword weights are both zero")
)

// ErrEmbedding wraps embedding-service failures. Unlike per-collection
// backend errors this one is fatal to the whole query: without a query
// vector the semantic branch cannot run at all.
var ErrEmbedding = errors.New("search: query embedding failed")
