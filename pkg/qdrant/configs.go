package qdrant

import (
	"time"
)

// Config holds connection and behavior settings for the Qdrant client.
//
// It is intentionally minimal and easy to override from environment
// variables, YAML, or programmatically via the builder helpers.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "qdrant.internal"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Embedding dimension used when creating collections.
	VectorSize uint64 `yaml:"vector_size" env:"QDRANT_VECTOR_SIZE"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		VectorSize:         1536,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

// Builder-style helpers (optional, ergonomic)

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithVectorSize(size uint64) *Config {
	c.VectorSize = size
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
