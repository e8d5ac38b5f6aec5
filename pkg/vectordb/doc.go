// Package vectordb defines the database-agnostic contract the retrieval
// core uses to talk to a vector storage backend.
//
// The core never imports a concrete backend SDK. It depends on the Store
// interface, which any backend adapter (Qdrant today, pgVector tomorrow)
// implements. This keeps the fusion and orchestration logic testable with
// in-memory fakes and independent of wire-level details.
//
// The package also carries the filter model shared between the core and
// the adapters. Filters are expressed as a FilterSet with Must (AND),
// Should (OR), and MustNot (NOT) clauses; adapters translate them into
// the backend's native filter representation.
//
// Example usage:
//
//	func NewSemanticExecutor(store vectordb.Store) *SemanticExecutor {
//	    return &SemanticExecutor{store: store}
//	}
//
//	hits, err := store.VectorSearch(ctx, vectordb.VectorSearchRequest{
//	    Collection:     "ds_orders",
//	    Vector:         queryVector,
//	    Limit:          10,
//	    ScoreThreshold: 0.3,
//	})
package vectordb
