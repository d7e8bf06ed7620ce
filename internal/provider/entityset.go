package provider

import (
	"context"
	"strings"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
)

// RunEntitySet drives a paginated entity-set read to completion, pushing
// every surviving Event onto events. It follows "@odata.nextLink" across
// as many pages as the service sends.
func RunEntitySet(ctx context.Context, fetcher *fetch.Fetcher, q EntitySetQuery, events chan<- entitystream.Event) error {
	caller := &multiURLCaller{fetcher: fetcher}
	return caller.call(ctx, buildEntitySetURL(q), q.User, q.Pass, func(stream *jsonstream.Stream) (string, error) {
		return readCollectionPage(ctx, stream, events)
	})
}

// buildEntitySetURL appends $filter, $select, and $orderby — in that
// fixed order — to q.URL when present. No URL-encoding is performed:
// callers are expected to supply already-encoded option values.
func buildEntitySetURL(q EntitySetQuery) string {
	var parts []string
	if q.Filter != "" {
		parts = append(parts, "$filter="+q.Filter)
	}
	if q.Select != "" {
		parts = append(parts, "$select="+q.Select)
	}
	if q.OrderBy != "" {
		parts = append(parts, "$orderby="+q.OrderBy)
	}
	if len(parts) == 0 {
		return q.URL
	}
	return q.URL + "?" + strings.Join(parts, "&")
}

// readCollectionPage consumes one fetched page: a top-level object whose
// keys may include "@odata.nextLink" (a string, captured and returned)
// and "value" (an array, streamed via entitystream.Streamer). Every other
// key is skipped. It is shared between the entity-set driver (which uses
// the returned next link) and the function driver (which ignores it).
func readCollectionPage(ctx context.Context, stream *jsonstream.Stream, events chan<- entitystream.Event) (string, error) {
	root, err := stream.Next()
	if err != nil {
		return "", err
	}
	if root == nil || root.Kind != jsonstream.StartObject {
		return "", &entitystream.ContentError{Msg: "expected a top-level JSON object in the response"}
	}

	var nextLink string
	for {
		tok, err := stream.Next()
		if err != nil {
			return "", err
		}
		if tok == nil {
			return "", &entitystream.ContentError{Msg: "response ended before its closing '}'"}
		}
		if tok.Kind == jsonstream.EndObject {
			break
		}
		if tok.Kind != jsonstream.Key {
			return "", &entitystream.ContentError{Msg: "expected a top-level key"}
		}

		switch tok.Text {
		case "@odata.nextLink":
			v, err := stream.Next()
			if err != nil {
				return "", err
			}
			if v == nil || v.Kind != jsonstream.String {
				return "", &entitystream.ContentError{Msg: "@odata.nextLink must be a string"}
			}
			nextLink = v.Text
		case "value":
			v, err := stream.Next()
			if err != nil {
				return "", err
			}
			if v == nil || v.Kind != jsonstream.StartArray {
				return "", &entitystream.ContentError{Msg: "value must be a JSON array"}
			}
			streamer := entitystream.NewStreamer(stream, entitystream.RootArray, events)
			if err := streamer.Run(ctx); err != nil {
				return "", err
			}
		default:
			if err := skipValue(stream); err != nil {
				return "", err
			}
		}
	}
	return nextLink, nil
}
