package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// Store implements vectordb.Store backed by the Qdrant API.
type Store struct {
	client *Client
	log    *logger.Logger
}

// NewStore wraps a connected Client into a vectordb.Store.
func NewStore(client *Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log}
}

// Compile-time contract check.
var _ vectordb.Store = (*Store)(nil)

// opContext bounds a single backend call with the configured request
// timeout. A zero timeout leaves the caller's deadline untouched.
func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.client.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.client.cfg.Timeout)
}

// CollectionExists reports whether the named collection is present.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("collection name cannot be empty")
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	exists, err := s.client.api.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("qdrant: collection existence check failed for '%s': %w", name, err)
	}
	return exists, nil
}

// VectorSearch performs a similarity search via the Query API.
//
// Results come back ordered by descending cosine similarity. The
// backend applies the score threshold natively, so callers never see
// sub-threshold points.
func (s *Store) VectorSearch(ctx context.Context, req vectordb.VectorSearchRequest) ([]vectordb.ScoredPoint, error) {
	if err := validateSearchInput(req.Collection, req.Vector, req.Limit); err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	limit := uint64(req.Limit)
	query := &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         convertFilterSet(req.Filter),
	}
	if req.ScoreThreshold > 0 {
		threshold := req.ScoreThreshold
		query.ScoreThreshold = &threshold
	}

	resp, err := s.client.api.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("qdrant: vector search failed in '%s': %w", req.Collection, err)
	}

	results, err := parseScoredPoints(resp)
	if err != nil {
		return nil, err
	}

	s.log.Debug("qdrant vector search completed", nil, map[string]interface{}{
		"collection": req.Collection,
		"hits":       len(results),
	})
	return results, nil
}

// FilteredScan retrieves points matching a structural filter via the
// Scroll API. No vector similarity is involved; the caller re-scores
// the returned candidates locally.
func (s *Store) FilteredScan(ctx context.Context, req vectordb.ScanRequest) ([]vectordb.Point, error) {
	if req.Collection == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	if req.Filter.Empty() {
		return nil, fmt.Errorf("scan filter cannot be empty")
	}
	if req.Limit <= 0 {
		return nil, fmt.Errorf("scan limit must be greater than 0")
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	limit := uint32(req.Limit)
	resp, err := s.client.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: req.Collection,
		Filter:         convertFilterSet(req.Filter),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: filtered scan failed in '%s': %w", req.Collection, err)
	}

	points := make([]vectordb.Point, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}
		points = append(points, vectordb.Point{
			ID:      id,
			Payload: convertPayload(r.Payload),
		})
	}

	s.log.Debug("qdrant filtered scan completed", nil, map[string]interface{}{
		"collection": req.Collection,
		"points":     len(points),
	})
	return points, nil
}

// Upsert adds or replaces points in a collection. The write is blocking
// (Wait=true) so data is persisted before returning.
func (s *Store) Upsert(ctx context.Context, collection string, points []vectordb.Point) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		qdrantPoints = append(qdrantPoints, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	wait := true
	if _, err := s.client.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
		Wait:           &wait,
	}); err != nil {
		return fmt.Errorf("qdrant: upsert failed in '%s': %w", collection, err)
	}

	s.log.Debug("qdrant upsert completed", nil, map[string]interface{}{
		"collection": collection,
		"points":     len(points),
	})
	return nil
}

// Delete removes points from a collection by their IDs.
func (s *Store) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	wait := true
	if _, err := s.client.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}); err != nil {
		return fmt.Errorf("qdrant: delete failed in '%s': %w", collection, err)
	}

	s.log.Debug("qdrant delete completed", nil, map[string]interface{}{
		"collection": collection,
		"ids":        len(ids),
	})
	return nil
}

// EnsureCollection verifies that a collection exists and creates it if
// missing. New collections use cosine distance and get full-text
// payload indexes on the text and content fields so MatchText filters
// work.
//
// Safe to call multiple times.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	exists, err := s.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if vectorSize == 0 {
		vectorSize = s.client.cfg.VectorSize
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("qdrant: failed to create collection '%s': %w", name, err)
	}

	// MatchText filters need a full-text index on each matched field.
	wait := true
	for _, field := range []string{vectordb.PayloadFieldText, vectordb.PayloadFieldContent} {
		if _, err := s.client.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: name,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeText.Enum(),
			Wait:           &wait,
		}); err != nil {
			return fmt.Errorf("qdrant: failed to index field '%s' in '%s': %w", field, name, err)
		}
	}

	s.log.Info("qdrant collection created", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": vectorSize,
	})
	return nil
}

// ListCollections returns the names of all existing collections.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	names, err := s.client.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to list collections: %w", err)
	}
	return names, nil
}

// validateSearchInput validates common search parameters.
func validateSearchInput(collection string, vector []float32, limit int) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	return nil
}
