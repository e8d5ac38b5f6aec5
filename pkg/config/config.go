// Package config loads the engine's configuration from a YAML file
// with environment-variable overrides, and feeds the per-package
// configs into the Fx graph.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fathomdata/retrieval/pkg/embedding"
	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/metrics"
	"github.com/fathomdata/retrieval/pkg/qdrant"
	"github.com/fathomdata/retrieval/pkg/search"
	"github.com/fathomdata/retrieval/pkg/tracer"
)

const defaultServiceName = "retrieval"

// Config is the root configuration document.
type Config struct {
	// ServiceName propagates into logging, metrics, and traces when
	// their sections do not set their own.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	Logger    logger.Config     `yaml:"logger"`
	Qdrant    *qdrant.Config    `yaml:"qdrant"`
	Embedding *embedding.Config `yaml:"embedding"`
	Metrics   metrics.Config    `yaml:"metrics"`
	Tracer    tracer.Config     `yaml:"tracer"`
	Search    *search.Config    `yaml:"search"`
}

// Default returns the configuration used when no file is given: local
// Qdrant, OpenAI embeddings keyed from the environment, info logging.
func Default() *Config {
	return &Config{
		ServiceName: defaultServiceName,
		Logger:      logger.Config{Level: logger.Info},
		Qdrant:      qdrant.DefaultConfig(),
		Embedding:   embedding.DefaultConfig(),
		Metrics: metrics.Config{
			Address:                 metrics.DefaultMetricsAddress,
			EnableDefaultCollectors: true,
		},
		Search: search.DefaultConfig(),
	}
}

// Load reads the YAML file at path on top of the defaults, then
// applies environment overrides. An empty path skips the file and
// loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.propagateServiceName()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts the engine cannot run without.
func (c *Config) Validate() error {
	if c.Qdrant == nil {
		return fmt.Errorf("config: missing qdrant section")
	}
	if c.Embedding == nil {
		return fmt.Errorf("config: missing embedding section")
	}
	if err := c.Embedding.Validate(); err != nil {
		return err
	}
	return nil
}

// applyEnv overrides file values from the process environment. Only
// variables that are set take effect, so the file stays authoritative
// for everything else.
func (c *Config) applyEnv() {
	envString("SERVICE_NAME", &c.ServiceName)
	envString("LOG_LEVEL", &c.Logger.Level)

	envString("QDRANT_ENDPOINT", &c.Qdrant.Endpoint)
	envInt("QDRANT_PORT", &c.Qdrant.Port)
	envString("QDRANT_API_KEY", &c.Qdrant.ApiKey)
	envUint64("QDRANT_VECTOR_SIZE", &c.Qdrant.VectorSize)
	envDuration("QDRANT_TIMEOUT", &c.Qdrant.Timeout)

	envString("EMBEDDING_API_KEY", &c.Embedding.APIKey)
	envString("EMBEDDING_BASE_URL", &c.Embedding.BaseURL)
	envString("EMBEDDING_MODEL", &c.Embedding.Model)
	envInt("EMBEDDING_DIMENSIONS", &c.Embedding.Dimensions)

	envString("METRICS_ADDRESS", &c.Metrics.Address)
	envString("APP_ENV", &c.Tracer.AppEnv)
	envBool("TRACER_ENABLE_EXPORT", &c.Tracer.EnableExport)

	envInt("SEARCH_DEFAULT_LIMIT", &c.Search.DefaultLimit)
	envInt("SEARCH_MAX_LIMIT", &c.Search.MaxLimit)
	envDuration("SEARCH_COLLECTION_TIMEOUT", &c.Search.CollectionTimeout)
}

// propagateServiceName fills the observability sections' service names
// from the root one unless set explicitly.
func (c *Config) propagateServiceName() {
	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.ServiceName
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.ServiceName
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.ServiceName
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envUint64(key string, dst *uint64) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
