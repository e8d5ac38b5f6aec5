package search

import "go.uber.org/fx"

// FXModule wires the hybrid search engine into Fx. It expects a
// vectordb.Store, an *embedding.Client, and a *logger.Logger in the
// graph; *Config, *metrics.Metrics, and *tracer.Tracer are picked up
// when present.
var FXModule = fx.Module("search",
	fx.Provide(
		NewOrchestrator, // -> *Orchestrator
		NewIndexer,      // -> *Indexer
	),
)
