package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry, the /metrics HTTP server, and
// the collectors the retrieval engine reports into.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	// HybridQueriesTotal counts hybrid queries by terminal status
	// ("ok", "empty", "config_error", "embedding_error", "cancelled").
	HybridQueriesTotal *prometheus.CounterVec

	// BranchFailuresTotal counts per-collection branch failures that
	// were substituted with empty results, labeled by branch
	// ("semantic", "keyword").
	BranchFailuresTotal *prometheus.CounterVec

	// QueryDuration observes end-to-end hybrid query latency in seconds.
	QueryDuration prometheus.Histogram

	// FusedHits observes the size of the globally merged result set
	// before windowing.
	FusedHits prometheus.Histogram

	serviceName string
}

// NewMetrics builds the registry, registers the engine's collectors,
// and prepares (but does not start) the /metrics server.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m := &Metrics{
		Registry:    registry,
		serviceName: cfg.ServiceName,

		HybridQueriesTotal: createCounterVec(
			"hybrid_queries_total",
			"Hybrid queries by terminal status.",
			[]string{"status"},
		),
		BranchFailuresTotal: createCounterVec(
			"search_branch_failures_total",
			"Per-collection search branch failures substituted with empty results.",
			[]string{"branch"},
		),
		QueryDuration: createHistogram(
			"hybrid_query_duration_seconds",
			"End-to-end hybrid query latency.",
			prometheus.DefBuckets,
		),
		FusedHits: createHistogram(
			"hybrid_fused_hits",
			"Globally merged result set size before offset/limit windowing.",
			[]float64{0, 1, 5, 10, 25, 50, 100, 250},
		),
	}

	wrappedRegistry.MustRegister(
		m.HybridQueriesTotal,
		m.BranchFailuresTotal,
		m.QueryDuration,
		m.FusedHits,
	)

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	m.Server = &http.Server{
		Addr:    address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}
