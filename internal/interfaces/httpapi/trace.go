package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fight-ledger/internal/interfaces/httpapi")

// startHandlerSpan opens "httpapi.Handler.<op>" under the request span.
// Untraced requests (health probes) get the parent's no-op span back.
func startHandlerSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+op, trace.WithAttributes(attrs...))
}
