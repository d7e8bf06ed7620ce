// Package obs provides the OpenTelemetry instrumentation shared across
// pipeline stages: tokens decoded, events emitted, channel-full retries,
// and pagination fetches.
package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter     metric.Meter
	meterOnce sync.Once

	tokensDecoded    metric.Int64Counter
	eventsEmitted    metric.Int64Counter
	channelRetries   metric.Int64Counter
	paginationFetches metric.Int64Counter
	outputChunks     metric.Int64Counter
)

// Meter returns the configured meter, initializing its instruments on
// first use. When no MeterProvider has been registered (the common case
// for a CLI run without --metrics), it falls back to a noop meter so
// every call site can record unconditionally.
func Meter() metric.Meter {
	meterOnce.Do(func() {
		provider := otel.GetMeterProvider()
		if provider == nil {
			meter = noop.NewMeterProvider().Meter("")
			return
		}
		meter = provider.Meter(
			"github.com/recera/rodata",
			metric.WithInstrumentationVersion("0.1.0"),
		)
		initializeInstruments()
	})
	return meter
}

func initializeInstruments() {
	var err error

	tokensDecoded, err = meter.Int64Counter(
		"rodata.tokens.decoded",
		metric.WithDescription("Total number of JSON tokens decoded"),
		metric.WithUnit("1"),
	)
	if err != nil {
		tokensDecoded = nil
	}

	eventsEmitted, err = meter.Int64Counter(
		"rodata.events.emitted",
		metric.WithDescription("Total number of entity-stream events emitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		eventsEmitted = nil
	}

	channelRetries, err = meter.Int64Counter(
		"rodata.channel.retries",
		metric.WithDescription("Total number of full-channel retry sleeps"),
		metric.WithUnit("1"),
	)
	if err != nil {
		channelRetries = nil
	}

	paginationFetches, err = meter.Int64Counter(
		"rodata.pagination.fetches",
		metric.WithDescription("Total number of HTTP fetches performed, including paginated follow-ups"),
		metric.WithUnit("1"),
	)
	if err != nil {
		paginationFetches = nil
	}

	outputChunks, err = meter.Int64Counter(
		"rodata.output.chunks",
		metric.WithDescription("Total number of rendered output chunks written"),
		metric.WithUnit("1"),
	)
	if err != nil {
		outputChunks = nil
	}
}

// RecordTokensDecoded adds n to the tokens-decoded counter.
func RecordTokensDecoded(ctx context.Context, n int64) {
	Meter()
	if tokensDecoded != nil {
		tokensDecoded.Add(ctx, n)
	}
}

// RecordEventEmitted increments the events-emitted counter by one.
func RecordEventEmitted(ctx context.Context) {
	Meter()
	if eventsEmitted != nil {
		eventsEmitted.Add(ctx, 1)
	}
}

// RecordChannelRetry increments the full-channel-retry counter by one.
func RecordChannelRetry(ctx context.Context) {
	Meter()
	if channelRetries != nil {
		channelRetries.Add(ctx, 1)
	}
}

// RecordPaginationFetch increments the pagination-fetch counter by one.
func RecordPaginationFetch(ctx context.Context) {
	Meter()
	if paginationFetches != nil {
		paginationFetches.Add(ctx, 1)
	}
}

// RecordOutputChunk increments the output-chunks counter by one.
func RecordOutputChunk(ctx context.Context) {
	Meter()
	if outputChunks != nil {
		outputChunks.Add(ctx, 1)
	}
}
