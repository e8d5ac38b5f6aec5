package metrics

// Default address for the metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"          → all interfaces, port 9090
	//   - "127.0.0.1:9100" → localhost only, port 9100
	//
	// Default: ":9090"
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	//
	// Default: true
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName identifies the service exposing metrics. It is used
	// as a common label on all metrics to distinguish services in
	// multi-tenant deployments.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`
}
