package provider

import (
	"context"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
)

// RunProperty drives a raw single-property read to completion. The
// response is a bare JSON scalar (no enclosing object or array), the
// fourth OData read shape entitystream.RootEntityType already had room
// for but that no driver in the sampled original exercised.
func RunProperty(ctx context.Context, fetcher *fetch.Fetcher, q PropertyQuery, events chan<- entitystream.Event) error {
	caller := &singleURLCaller{fetcher: fetcher}
	return caller.call(ctx, q.URL, q.User, q.Pass, func(stream *jsonstream.Stream) error {
		return entitystream.NewStreamer(stream, entitystream.RootValue, events).Run(ctx)
	})
}
