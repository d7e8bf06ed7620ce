package obs

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EnableStdoutMetrics registers a global MeterProvider that periodically
// exports this package's counters as JSON to standard output. Callers
// that never invoke this get the noop meter Meter() falls back to —
// metrics remain entirely opt-in.
func EnableStdoutMetrics(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

// EnableStdoutTracing registers a global TracerProvider that writes one
// JSON span record per completed run to standard output. Like
// EnableStdoutMetrics, this is opt-in; Tracer() otherwise returns the
// otel package default, a noop implementation.
func EnableStdoutTracing(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := stdouttrace.New()
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
