package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/fathomdata/retrieval/pkg/logger"
)

// Tracer provides a simplified API for distributed tracing with
// OpenTelemetry. It wraps the TracerProvider and offers convenient
// methods for creating spans, recording errors, and propagating trace
// context across service boundaries.
//
// The Tracer is thread-safe and can be shared across goroutines.
type Tracer struct {
	tracer *trace.TracerProvider
	log    *logger.Logger
}

// NewClient creates and initializes a new Tracer.
//
// If trace export is enabled in the configuration, an OTLP HTTP
// exporter is set up that sends traces to the endpoint configured via
// the standard OTEL_* environment variables. Resource attributes
// include the service name and deployment environment.
func NewClient(cfg Config, log *logger.Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			log.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{tracer: tp, log: log}
}
