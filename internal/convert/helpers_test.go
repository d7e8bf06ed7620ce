package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/jsonstream"
)

// produceEvents drives body through the tokenizer and the streamer, root
// entity type inferred from body's first character, and returns the
// resulting event stream on a buffered channel sized so the producer
// never blocks.
func produceEvents(t *testing.T, body string) <-chan entitystream.Event {
	t.Helper()
	root := entitystream.RootObject
	if strings.HasPrefix(strings.TrimSpace(body), "[") {
		root = entitystream.RootArray
	}
	return produceEventsRoot(t, body, root)
}

// produceEventsRoot is produceEvents with an explicit root entity type,
// for bodies (a bare scalar property value) produceEvents can't infer. For
// RootArray/RootObject it consumes body's opening '['/'{' first, the way
// the query drivers position the stream before streaming it.
func produceEventsRoot(t *testing.T, body string, root entitystream.RootEntityType) <-chan entitystream.Event {
	t.Helper()
	stream := jsonstream.NewStream(strings.NewReader(body))
	if root == entitystream.RootArray || root == entitystream.RootObject {
		if _, err := stream.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
	events := make(chan entitystream.Event, 4096)
	s := entitystream.NewStreamer(stream, root, events)
	go func() {
		defer close(events)
		if err := s.Run(context.Background()); err != nil {
			t.Errorf("Streamer.Run() error = %v", err)
		}
	}()
	return events
}

// collectChunks runs converter over events and joins every chunk it
// sends, for tests that only care about the final rendered text.
func collectChunks(t *testing.T, converter func(context.Context, <-chan entitystream.Event, chan<- string) error, events <-chan entitystream.Event) string {
	t.Helper()
	out := make(chan string, 4096)
	done := make(chan error, 1)
	go func() {
		err := converter(context.Background(), events, out)
		close(out)
		done <- err
	}()

	var b strings.Builder
	for chunk := range out {
		b.WriteString(chunk)
	}
	if err := <-done; err != nil {
		t.Fatalf("converter error = %v", err)
	}
	return b.String()
}
