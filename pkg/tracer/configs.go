package tracer

// Config controls tracer construction.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// AppEnv tags traces with the deployment environment
	// (e.g. "production", "staging").
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport controls whether spans are exported over OTLP HTTP.
	// When false, spans are created but never leave the process; the
	// exporter endpoint is taken from the standard OTEL_* environment
	// variables.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}
