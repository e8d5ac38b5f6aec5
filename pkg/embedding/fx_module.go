package embedding

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the embedding client into Fx.
var FXModule = fx.Module("embedding",
	fx.Provide(
		NewClient, // -> *Client
	),
	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle ensures the Client (and its provider) are
// cleaned up on application shutdown.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
