package search

import (
	"context"

	traceSpan "go.opentelemetry.io/otel/trace"
)

// Tracing is optional; these helpers make a nil tracer a no-op so the
// pipeline code does not branch on it.

func (o *Orchestrator) startSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	if o.tracer == nil {
		return ctx, nil
	}
	return o.tracer.StartSpan(ctx, name)
}

func (o *Orchestrator) endSpan(span traceSpan.Span) {
	if span != nil {
		span.End()
	}
}

func (o *Orchestrator) spanAttrs(span traceSpan.Span, attrs map[string]interface{}) {
	if span != nil {
		o.tracer.SetAttributes(span, attrs)
	}
}

func (o *Orchestrator) recordSpanError(span traceSpan.Span, err error) {
	if span != nil {
		o.tracer.RecordErrorOnSpan(span, err)
	}
}
