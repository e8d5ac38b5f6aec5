package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/fx"

	"github.com/fathomdata/retrieval/pkg/logger"
)

// Client wraps the official Qdrant Go client.
//
// It manages connection lifecycle and configuration; the higher-level
// Store in this package builds vectordb.Store semantics on top of it.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	log     *logger.Logger
	started bool
}

// ClientParams bundles the dependencies needed to construct the client.
type ClientParams struct {
	fx.In

	Config *Config
	Logger *logger.Logger
}

// NewClient constructs a new Qdrant client and validates connectivity
// via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this
// performs an immediate health check to fail fast when the service is
// unreachable.
func NewClient(p ClientParams) (*Client, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{
		api:     api,
		cfg:     cfg,
		log:     p.Logger,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.log.Info("qdrant client connected", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})
	return c, nil
}

// healthCheck verifies availability of the Qdrant service through the SDK.
// It is lightweight and fast, suitable for startup and readiness checks.
func (c *Client) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("client not initialized")
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	c.log.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.Title,
		"version": resp.Version,
	})
	return nil
}

// API returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the Qdrant client and its underlying
// gRPC connection.
func (c *Client) Close() {
	if !c.started {
		return
	}
	c.started = false
	if err := c.api.Close(); err != nil {
		c.log.Warn("qdrant client close failed", err, nil)
		return
	}
	c.log.Debug("qdrant client closed", nil, nil)
}
