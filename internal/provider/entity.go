package provider

import (
	"context"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
)

// RunEntityIndividual drives a single-entity read to completion. It skips
// the outer '{' and drives the streamer directly over the entity's own
// keys — including any nested navigation properties the service chose to
// expand inline.
func RunEntityIndividual(ctx context.Context, fetcher *fetch.Fetcher, q EntityIndividualQuery, events chan<- entitystream.Event) error {
	caller := &singleURLCaller{fetcher: fetcher}
	return caller.call(ctx, q.URL, q.User, q.Pass, func(stream *jsonstream.Stream) error {
		root, err := stream.Next()
		if err != nil {
			return err
		}
		if root == nil || root.Kind != jsonstream.StartObject {
			return &entitystream.ContentError{Msg: "expected a top-level JSON object in the response"}
		}
		return entitystream.NewStreamer(stream, entitystream.RootObject, events).Run(ctx)
	})
}
