package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/fathomdata/retrieval/pkg/embedding"
	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// Indexer writes documents into the collections the engine searches.
// It shares CollectionName with the query path, so a source indexed
// here is found by a query naming the same source identifier.
type Indexer struct {
	store    vectordb.Store
	embedder *embedding.Client
	log      *logger.Logger
}

type IndexerParams struct {
	fx.In

	Store    vectordb.Store
	Embedder *embedding.Client
	Logger   *logger.Logger
}

func NewIndexer(p IndexerParams) *Indexer {
	return &Indexer{store: p.Store, embedder: p.Embedder, log: p.Logger}
}

// Index embeds and upserts the documents into the source's collection,
// creating the collection on first use. The collection's vector size
// is taken from the first embedding, so it always matches the
// configured embedding model.
//
// Re-indexing a document id replaces the stored point.
func (ix *Indexer) Index(ctx context.Context, sourceID string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	collection := CollectionName(sourceID)

	points := make([]vectordb.Point, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("indexing into %q: document with empty id", collection)
		}
		if doc.Text == "" {
			return fmt.Errorf("indexing %q into %q: document text is empty", doc.ID, collection)
		}
		vector, err := ix.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return fmt.Errorf("embedding %q for %q: %w", doc.ID, collection, err)
		}
		points = append(points, vectordb.Point{
			ID:      doc.ID,
			Vector:  vector,
			Payload: documentPayload(doc, sourceID),
		})
	}

	if err := ix.store.EnsureCollection(ctx, collection, uint64(len(points[0].Vector))); err != nil {
		return fmt.Errorf("ensuring collection %q: %w", collection, err)
	}
	if err := ix.store.Upsert(ctx, collection, points); err != nil {
		return fmt.Errorf("upserting %d points into %q: %w", len(points), collection, err)
	}

	ix.log.Info("indexed documents", nil, map[string]interface{}{
		"collection": collection,
		"documents":  len(points),
	})
	return nil
}

// Remove deletes documents by id from the source's collection.
func (ix *Indexer) Remove(ctx context.Context, sourceID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	collection := CollectionName(sourceID)
	if err := ix.store.Delete(ctx, collection, ids); err != nil {
		return fmt.Errorf("deleting %d points from %q: %w", len(ids), collection, err)
	}
	return nil
}

// documentPayload lays a document out the way the query path reads it:
// text under the well-known text field, the creation timestamp in
// RFC3339 for the recency signal, caller metadata namespaced under
// metadata.
func documentPayload(doc Document, sourceID string) map[string]any {
	payload := map[string]any{
		vectordb.PayloadFieldText: doc.Text,
		"source_id":               sourceID,
	}
	if !doc.CreatedAt.IsZero() {
		payload[vectordb.PayloadFieldCreatedAt] = doc.CreatedAt.UTC().Format(time.RFC3339)
	}
	if len(doc.Metadata) > 0 {
		metadata := make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		payload[vectordb.MetadataPrefix] = metadata
	}
	return payload
}
