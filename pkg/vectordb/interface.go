package vectordb

import "context"

// Store is the common interface for all vector database backends.
//
// It is deliberately narrow: the retrieval core needs similarity search,
// a filtered scan primitive for lexical matching, an existence check for
// multi-tenant fan-out, and the write operations used by ingestion.
//
// Example:
//
//	func NewOrchestrator(store vectordb.Store) *Orchestrator {
//	    return &Orchestrator{store: store}
//	}
//
//	// Works with any implementation:
//	// - qdrant.NewStore(client)
//	// - an in-memory fake in tests
type Store interface {
	// CollectionExists reports whether a collection is present.
	// Absence is a normal condition during fan-out, not an error.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// VectorSearch performs a similarity search in one collection.
	// Results are ordered by descending similarity score in the
	// backend's native scale. An optional filter restricts candidates,
	// and ScoreThreshold drops hits below the given similarity.
	VectorSearch(ctx context.Context, req VectorSearchRequest) ([]ScoredPoint, error)

	// FilteredScan retrieves points matching a structural filter without
	// vector similarity. Used by the keyword branch to gather candidates
	// that are then re-scored locally.
	FilteredScan(ctx context.Context, req ScanRequest) ([]Point, error)

	// Upsert adds or replaces points in a collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Delete removes points by their IDs from a collection.
	Delete(ctx context.Context, collection string, ids []string) error

	// EnsureCollection creates a collection if it doesn't exist.
	// Safe to call multiple times.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// ListCollections returns names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
