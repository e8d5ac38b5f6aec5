package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference
// provider. Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	return &Client{provider: newOpenAIProvider(cfg)}, nil
}

// NewClientWithProvider constructs a Client around an explicit provider.
// Intended for tests and for callers supplying custom inference backends.
func NewClientWithProvider(p Provider) *Client {
	return &Client{provider: p}
}

// Embed executes a single embedding request.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embedding: empty text")
	}
	return c.provider.Embed(ctx, text)
}

// Close allows the client to release any internal resources used by the
// provider. Currently a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
