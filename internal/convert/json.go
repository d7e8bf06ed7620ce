// Package convert implements the three format converters: JSON, XML, and
// CSV. Each consumes an entitystream.Event channel and pushes rendered
// output chunks onto a string channel, applying the same
// chansend-mediated backpressure as every other pipeline stage.
package convert

import (
	"context"
	"strings"

	"github.com/recera/rodata/internal/chansend"
	"github.com/recera/rodata/internal/entitystream"
)

// RunJSON reconstructs the filtered event tree as JSON, byte for byte:
// string and number lexemes are re-emitted verbatim (no re-escaping — the
// source is trusted to have delivered valid JSON already), and
// punctuation is inserted purely from path/sibling bookkeeping rather
// than by re-parsing anything. nonEmpty tracks, per open container path,
// whether it has already emitted a member — state private to this one
// converter instance, not shared across converters or tasks.
func RunJSON(ctx context.Context, events <-chan entitystream.Event, out chan<- string) error {
	nonEmpty := map[string]bool{}

	for e := range events {
		var b strings.Builder
		writeJSONSeparatorAndKey(&b, e, nonEmpty)
		writeJSONValue(&b, e.Value)

		if isClose(e.Value.Kind) {
			delete(nonEmpty, e.Path.String())
		} else if parentPath, ok := e.Path.Parent(); ok {
			nonEmpty[parentPath.String()] = true
		}

		if err := chansend.Send(ctx, out, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONValue(b *strings.Builder, v entitystream.Value) {
	switch v.Kind {
	case entitystream.StartObject:
		b.WriteByte('{')
	case entitystream.EndObject:
		b.WriteByte('}')
	case entitystream.StartArray:
		b.WriteByte('[')
	case entitystream.EndArray:
		b.WriteByte(']')
	case entitystream.Null:
		b.WriteString("null")
	case entitystream.Boolean:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case entitystream.Number:
		b.WriteString(v.Text)
	case entitystream.String:
		b.WriteByte('"')
		b.WriteString(v.Text)
		b.WriteByte('"')
	}
}

// writeJSONSeparatorAndKey writes the leading comma (when this event's
// parent has already emitted a member/element) and, for an
// object-addressed event, the quoted "key": prefix. Close events never
// need either: the comma and key for the container they're closing were
// already placed with that container's opening event.
func writeJSONSeparatorAndKey(b *strings.Builder, e entitystream.Event, nonEmpty map[string]bool) {
	if isClose(e.Value.Kind) {
		return
	}
	parentPath, hasParent := e.Path.Parent()
	if !hasParent {
		return
	}
	if nonEmpty[parentPath.String()] {
		b.WriteByte(',')
	}
	last := e.Path[len(e.Path)-1]
	if last.Kind == entitystream.PositionKey {
		b.WriteByte('"')
		b.WriteString(last.Key)
		b.WriteString(`":`)
	}
}

func isClose(k entitystream.ValueKind) bool {
	return k == entitystream.EndObject || k == entitystream.EndArray
}
