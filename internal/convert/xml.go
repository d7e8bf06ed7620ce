package convert

import (
	"context"
	"strings"

	"github.com/recera/rodata/internal/chansend"
	"github.com/recera/rodata/internal/entitystream"
)

// RunXML renders the filtered event tree as XML. Elements are named after
// their key when the parent is an object, "value" when the parent is an
// array, and the root container is left unwrapped (its open/close events
// produce no element of their own). No attribute or content escaping is
// performed — the same trust assumption the JSON converter makes about
// its source.
func RunXML(ctx context.Context, events <-chan entitystream.Event, out chan<- string) error {
	for e := range events {
		var b strings.Builder
		name, isRoot := xmlElementName(e.Path)

		switch e.Value.Kind {
		case entitystream.StartObject, entitystream.StartArray:
			if !isRoot {
				b.WriteByte('<')
				b.WriteString(name)
				b.WriteByte('>')
			}
		case entitystream.EndObject, entitystream.EndArray:
			if !isRoot {
				b.WriteString("</")
				b.WriteString(name)
				b.WriteByte('>')
			}
		case entitystream.Null:
			if !isRoot {
				b.WriteByte('<')
				b.WriteString(name)
				b.WriteString("/>")
			}
		case entitystream.Boolean:
			if isRoot {
				b.WriteString(boolText(e.Value.Bool))
			} else {
				writeXMLElement(&b, name, boolText(e.Value.Bool))
			}
		case entitystream.Number:
			if isRoot {
				b.WriteString(e.Value.Text)
			} else {
				writeXMLElement(&b, name, e.Value.Text)
			}
		case entitystream.String:
			if isRoot {
				b.WriteString(e.Value.Text)
			} else {
				writeXMLElement(&b, name, e.Value.Text)
			}
		}

		if err := chansend.Send(ctx, out, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeXMLElement(b *strings.Builder, name, content string) {
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// xmlElementName derives an event's element name from the last step of
// its path: a key names the element directly, an index names it "value",
// and the empty (root) path is unwrapped.
func xmlElementName(p entitystream.Path) (name string, isRoot bool) {
	if len(p) == 0 {
		return "", true
	}
	last := p[len(p)-1]
	if last.Kind == entitystream.PositionKey {
		return last.Key, false
	}
	return "value", false
}
