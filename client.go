// Package rodata is a streaming client for reading OData v4 JSON
// responses without ever buffering a full response in memory: a
// Client fetches one page at a time, walks it token by token, and
// renders JSON, XML, or CSV output incrementally as each entity is
// decoded.
package rodata

import (
	"context"
	"net/http"

	"github.com/recera/rodata/internal/convert"
	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/obs"
	"github.com/recera/rodata/internal/provider"
	"github.com/recera/rodata/internal/writer"
	"golang.org/x/time/rate"
)

// Format selects the output converter a Client run renders through.
type Format int

const (
	// FormatJSON reconstructs the filtered response as JSON.
	FormatJSON Format = iota
	// FormatXML renders key-or-"value"-named elements, unwrapped at the
	// root.
	FormatXML
	// FormatCSV renders one header row plus one row per record (array
	// mode) or a single header-and-row pair (single-object mode).
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatCSV:
		return "csv"
	default:
		return "json"
	}
}

// Channel capacities match the pipeline's configured bounds: large
// enough that a fast producer rarely blocks behind a slower converter or
// writer, while still bounding memory to a fixed multiple of one event's
// size rather than the whole response.
const (
	eventChannelCapacity  = 1_000_000
	outputChannelCapacity = 1_000_000
)

// Client runs query drivers against an OData service and renders their
// output through one of the three format converters.
type Client struct {
	fetcher    *fetch.Fetcher
	csvDialect convert.Dialect
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the *http.Client used for every fetch,
// letting a caller tune timeouts, transport, or proxy settings.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.fetcher.Client = hc
	}
}

// WithRateLimit throttles outgoing fetches to at most rps requests per
// second, with burst allowed to momentarily exceed it. Most useful
// against a paginated entity-set read, which otherwise fetches each
// page back to back with no pacing.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.fetcher.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCSVDialect overrides the CSV converter's field separator and line
// ending (the sampled source's own dialect, and this Client's default
// absent this option, is a semicolon and a CRLF).
func WithCSVDialect(fieldSep, lineEnd string) ClientOption {
	return func(c *Client) {
		c.csvDialect = convert.Dialect{FieldSep: fieldSep, LineEnd: lineEnd}
	}
}

// NewClient returns a Client ready to run queries.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{fetcher: fetch.New(), csvDialect: convert.DefaultDialect()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunEntitySet streams q's paginated collection to outputPath (or
// standard output, via the "-" sentinel), rendered in format.
func (c *Client) RunEntitySet(ctx context.Context, q EntitySetQuery, format Format, outputPath string) error {
	return c.run(ctx, "entityset", format, outputPath, func(ctx context.Context, events chan<- entitystream.Event) error {
		return provider.RunEntitySet(ctx, c.fetcher, q, events)
	})
}

// RunEntityIndividual streams a single entity identified by q.
func (c *Client) RunEntityIndividual(ctx context.Context, q EntityIndividualQuery, format Format, outputPath string) error {
	return c.run(ctx, "entity", format, outputPath, func(ctx context.Context, events chan<- entitystream.Event) error {
		return provider.RunEntityIndividual(ctx, c.fetcher, q, events)
	})
}

// RunFunction streams the single-page result of an OData function
// import identified by q.
func (c *Client) RunFunction(ctx context.Context, q FunctionQuery, format Format, outputPath string) error {
	return c.run(ctx, "function", format, outputPath, func(ctx context.Context, events chan<- entitystream.Event) error {
		return provider.RunFunction(ctx, c.fetcher, q, events)
	})
}

// RunProperty streams a single raw property value identified by q.
func (c *Client) RunProperty(ctx context.Context, q PropertyQuery, format Format, outputPath string) error {
	return c.run(ctx, "property", format, outputPath, func(ctx context.Context, events chan<- entitystream.Event) error {
		return provider.RunProperty(ctx, c.fetcher, q, events)
	})
}

// run wires drive (a query driver bound to its own query struct) through
// the shared converter/writer tail of the pipeline: drive -> events ->
// converter -> out -> writer, three goroutines connected by bounded
// channels, each closing its outgoing channel when its incoming one is
// drained or it errors out.
//
// All three stages share a context derived from ctx so that if one of
// them fails while the others are mid-flight, cancelling it unblocks any
// chansend.Send retry loop that would otherwise keep sleeping against a
// channel nobody drains anymore. The first error observed across all
// three stages is classified and returned.
func (c *Client) run(ctx context.Context, kind string, format Format, outputPath string, drive func(context.Context, chan<- entitystream.Event) error) error {
	ctx, span := obs.StartRun(ctx, kind)
	defer span.End()

	w, err := writer.Open(outputPath)
	if err != nil {
		return &Error{Category: ErrorCategoryWrite, Message: err.Error(), Cause: err}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan entitystream.Event, eventChannelCapacity)
	out := make(chan string, outputChannelCapacity)
	results := make(chan error, 3)

	go func() {
		err := drive(runCtx, events)
		close(events)
		results <- err
	}()

	go func() {
		err := c.converterFor(format)(runCtx, events, out)
		close(out)
		results <- err
	}()

	go func() {
		if err := w.Run(runCtx, out); err != nil {
			results <- &Error{Category: ErrorCategoryWrite, Message: err.Error(), Cause: err}
			return
		}
		results <- nil
	}()

	var firstErr error
	for i := 0; i < 3; i++ {
		if err := <-results; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	if firstErr != nil {
		err := classify(firstErr)
		span.RecordError(err)
		return err
	}
	return nil
}

func (c *Client) converterFor(format Format) func(context.Context, <-chan entitystream.Event, chan<- string) error {
	switch format {
	case FormatXML:
		return convert.RunXML
	case FormatCSV:
		return func(ctx context.Context, events <-chan entitystream.Event, out chan<- string) error {
			return convert.RunCSVDialect(ctx, events, out, c.csvDialect)
		}
	default:
		return convert.RunJSON
	}
}
