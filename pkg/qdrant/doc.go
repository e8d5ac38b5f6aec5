// Package qdrant implements the vectordb.Store contract on top of the
// official Qdrant Go client.
//
// The package wraps the SDK behind a Client with connection lifecycle and
// health checking, and a Store that translates the database-agnostic
// request and filter types of pkg/vectordb into Qdrant's gRPC API:
//
//   - VectorSearch uses the Query API with payload selection, an optional
//     structural filter, and a native score threshold.
//   - FilteredScan uses the Scroll API, which retrieves points by filter
//     without vector similarity.
//   - EnsureCollection creates missing collections with cosine distance
//     and a full-text payload index on the "text" field, which the
//     keyword branch's MatchText conditions rely on.
//
// Usage:
//
//	client, err := qdrant.NewClient(qdrant.ClientParams{Config: cfg, Logger: log})
//	if err != nil {
//	    return err
//	}
//	store := qdrant.NewStore(client, log)
//
//	exists, err := store.CollectionExists(ctx, "ds_orders")
//
// With Fx, use FXModule, which provides both the client and the store
// (the latter as vectordb.Store) and registers shutdown hooks.
package qdrant
