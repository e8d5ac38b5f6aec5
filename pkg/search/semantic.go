package search

import (
	"context"
	"fmt"

	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// SemanticExecutor runs the dense-vector branch of the hybrid
// pipeline against one collection.
type SemanticExecutor struct {
	store vectordb.Store
}

func NewSemanticExecutor(store vectordb.Store) *SemanticExecutor {
	return &SemanticExecutor{store: store}
}

// Search performs a cosine similarity search in the given collection.
//
// A collection that does not exist is a normal condition (the source
// may simply not be indexed yet) and yields an empty result without
// error. Backend failures are returned for the caller to degrade on.
//
// threshold is forwarded to the backend as a native score cutoff; pass
// zero to defer all thresholding to the caller.
func (e *SemanticExecutor) Search(ctx context.Context, collection string, vector []float32, filter *vectordb.FilterSet, limit int, threshold float64) ([]Hit, error) {
	exists, err := e.store.CollectionExists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("checking collection %q: %w", collection, err)
	}
	if !exists {
		return nil, nil
	}

	points, err := e.store.VectorSearch(ctx, vectordb.VectorSearchRequest{
		Collection:     collection,
		Vector:         vector,
		Limit:          limit,
		ScoreThreshold: float32(threshold),
		Filter:         filter,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search in %q: %w", collection, err)
	}

	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		hits = append(hits, Hit{
			ID:         p.ID,
			Score:      float64(p.Score),
			Payload:    p.Payload,
			Source:     SourceSemantic,
			Collection: collection,
		})
	}
	return hits, nil
}
