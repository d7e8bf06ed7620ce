package provider

import (
	"context"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
)

// RunFunction drives an OData function-import read to completion. Unlike
// RunEntitySet it never paginates: the response's "@odata.nextLink", if
// present, is ignored, and exactly one URL is fetched.
func RunFunction(ctx context.Context, fetcher *fetch.Fetcher, q FunctionQuery, events chan<- entitystream.Event) error {
	caller := &singleURLCaller{fetcher: fetcher}
	return caller.call(ctx, q.URL, q.User, q.Pass, func(stream *jsonstream.Stream) error {
		_, err := readCollectionPage(ctx, stream, events)
		return err
	})
}
