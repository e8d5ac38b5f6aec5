package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// FXModule defines the Fx module for the Qdrant backend.
//
// It provides the connected Client and the Store, the latter exposed as
// the vectordb.Store interface so downstream components stay
// backend-agnostic.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//
// A *qdrant.Config and *logger.Logger must be available in the container.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewClient,
		fx.Annotate(NewStore, fx.As(new(vectordb.Store))),
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle handles shutdown of the Qdrant client.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			once.Do(client.Close)
			return nil
		},
	})
}
