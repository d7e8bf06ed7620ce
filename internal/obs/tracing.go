package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer     trace.Tracer
	tracerOnce sync.Once
)

// Tracer returns the configured tracer. With no TracerProvider
// registered (the default), otel.Tracer already returns a no-op
// implementation, so there is nothing extra to fall back to here.
func Tracer() trace.Tracer {
	tracerOnce.Do(func() {
		tracer = otel.Tracer("github.com/recera/rodata")
	})
	return tracer
}

// StartRun opens a span covering one Client.Run* call, tagged with the
// query shape (entityset, entity, function, property) it drove.
func StartRun(ctx context.Context, kind string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "rodata.run",
		trace.WithAttributes(attribute.String("rodata.query_kind", kind)),
	)
}
