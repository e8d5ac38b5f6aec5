package config

import (
	"go.uber.org/fx"

	"github.com/fathomdata/retrieval/pkg/embedding"
	"github.com/fathomdata/retrieval/pkg/logger"
	"github.com/fathomdata/retrieval/pkg/metrics"
	"github.com/fathomdata/retrieval/pkg/qdrant"
	"github.com/fathomdata/retrieval/pkg/search"
	"github.com/fathomdata/retrieval/pkg/tracer"
)

// FXModule provides the loaded root config and splits it into the
// per-package config types the other modules consume. The *Config
// itself must already be in the graph (fx.Supply a Load result).
var FXModule = fx.Module("config",
	fx.Provide(
		func(c *Config) logger.Config { return c.Logger },
		func(c *Config) *qdrant.Config { return c.Qdrant },
		func(c *Config) *embedding.Config { return c.Embedding },
		func(c *Config) metrics.Config { return c.Metrics },
		func(c *Config) tracer.Config { return c.Tracer },
		func(c *Config) *search.Config { return c.Search },
	),
)
