package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer = otel.Tracer("tennis-players/internal/usecase")
	usecaseAttr   = attribute.String("app.layer", "usecase")
)

// startUsecaseSpan only nests under an existing span; background callers and
// tests get the no-op span already carried by ctx.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(usecaseAttr))
}
