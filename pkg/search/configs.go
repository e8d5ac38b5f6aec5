package search

import "time"

const (
	// DefaultLimit is applied when a query does not specify one.
	DefaultLimit = 10

	// MaxLimit is a hard cap on query limits; larger requests are
	// clamped rather than rejected.
	MaxLimit = 100

	// DefaultCollectionTimeout bounds the whole pipeline for one
	// collection. A collection exceeding it contributes an empty
	// result instead of stalling the fan-out.
	DefaultCollectionTimeout = 10 * time.Second
)

// defaultKeywordFields are the payload fields the keyword branch
// matches against when a query names none.
var defaultKeywordFields = []string{"text", "content"}

// Config holds the orchestrator's tuning knobs.
type Config struct {
	// DefaultLimit replaces an unset query limit. Zero selects the
	// package default.
	DefaultLimit int `yaml:"default_limit" env:"SEARCH_DEFAULT_LIMIT"`

	// MaxLimit caps query limits. Zero selects the package default.
	MaxLimit int `yaml:"max_limit" env:"SEARCH_MAX_LIMIT"`

	// CollectionTimeout bounds the per-collection pipeline. Zero
	// selects the package default.
	CollectionTimeout time.Duration `yaml:"collection_timeout" env:"SEARCH_COLLECTION_TIMEOUT"`
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:      DefaultLimit,
		MaxLimit:          MaxLimit,
		CollectionTimeout: DefaultCollectionTimeout,
	}
}

// WithCollectionTimeout overrides the per-collection timeout.
func (c *Config) WithCollectionTimeout(d time.Duration) *Config {
	c.CollectionTimeout = d
	return c
}

// WithLimits overrides the default and maximum result limits.
func (c *Config) WithLimits(defaultLimit, maxLimit int) *Config {
	c.DefaultLimit = defaultLimit
	c.MaxLimit = maxLimit
	return c
}

func (c *Config) defaultLimit() int {
	if c.DefaultLimit > 0 {
		return c.DefaultLimit
	}
	return DefaultLimit
}

func (c *Config) maxLimit() int {
	if c.MaxLimit > 0 {
		return c.MaxLimit
	}
	return MaxLimit
}

func (c *Config) collectionTimeout() time.Duration {
	if c.CollectionTimeout > 0 {
		return c.CollectionTimeout
	}
	return DefaultCollectionTimeout
}
