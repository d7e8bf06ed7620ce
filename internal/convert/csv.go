package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/recera/rodata/internal/chansend"
	"github.com/recera/rodata/internal/entitystream"
)

// Dialect configures the CSV converter's field separator and line
// ending. The zero value is invalid; use DefaultDialect for the sampled
// source's own dialect.
type Dialect struct {
	FieldSep string
	LineEnd  string
}

// DefaultDialect matches the sampled source's CSV dialect: a
// semicolon-delimited, CRLF-terminated format with no escaping of
// embedded delimiters or quote characters in field text.
func DefaultDialect() Dialect {
	return Dialect{FieldSep: ";", LineEnd: "\r\n"}
}

// RunCSV renders the event tree as CSV using DefaultDialect. The root's
// shape selects one of two modes: a single root object becomes one
// header row and one data row; a root array becomes a header row
// (locked to the first element's keys) followed by one data row per
// element. A complex (object or array) field value is flattened into a
// single cell — "(k1: v1 / k2: v2)" for an object, "v1 / v2" for an
// array — rather than split across columns, since CSV has no native
// nested-value representation.
func RunCSV(ctx context.Context, events <-chan entitystream.Event, out chan<- string) error {
	return RunCSVDialect(ctx, events, out, DefaultDialect())
}

// RunCSVDialect is RunCSV with an overridable field separator and line
// ending, for a config file's delimiter/newline overrides.
func RunCSVDialect(ctx context.Context, events <-chan entitystream.Event, out chan<- string, d Dialect) error {
	first, ok := <-events
	if !ok {
		return nil
	}

	switch first.Value.Kind {
	case entitystream.StartObject:
		return runCSVSingleObject(ctx, events, out, d)
	case entitystream.StartArray:
		return runCSVArray(ctx, events, out, d)
	default:
		return fmt.Errorf("convert: CSV root must be an object or an array, got %v", first.Value.Kind)
	}
}

func runCSVSingleObject(ctx context.Context, events <-chan entitystream.Event, out chan<- string, d Dialect) error {
	fields, err := readRecordFields(events, entitystream.Path{})
	if err != nil {
		return err
	}

	header := fieldKeys(fields)
	if err := chansend.Send(ctx, out, csvLine(header, d)); err != nil {
		return err
	}

	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = f.text
	}
	return chansend.Send(ctx, out, csvLine(row, d))
}

func runCSVArray(ctx context.Context, events <-chan entitystream.Event, out chan<- string, d Dialect) error {
	var header []string
	headerSent := false

	for e := range events {
		if isCloseKind(e.Value.Kind) && len(e.Path) == 0 {
			return nil
		}
		if e.Value.Kind != entitystream.StartObject || len(e.Path) != 1 {
			continue
		}

		fields, err := readRecordFields(events, e.Path)
		if err != nil {
			return err
		}

		if !headerSent {
			header = fieldKeys(fields)
			if err := chansend.Send(ctx, out, csvLine(header, d)); err != nil {
				return err
			}
			headerSent = true
		}

		lookup := make(map[string]string, len(fields))
		for _, f := range fields {
			lookup[f.key] = f.text
		}
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = lookup[k]
		}
		if err := chansend.Send(ctx, out, csvLine(row, d)); err != nil {
			return err
		}
	}
	return fmt.Errorf("convert: event stream ended before the root array's closing ']'")
}

type field struct {
	key  string
	text string
}

// readRecordFields reads one record's direct members, stopping at the
// close event matching recordPath. Each member's value is rendered in
// full — recursing through readValueText for nested containers — before
// readRecordFields moves on to the next sibling.
func readRecordFields(events <-chan entitystream.Event, recordPath entitystream.Path) ([]field, error) {
	var fields []field
	for e := range events {
		if isCloseKind(e.Value.Kind) && e.Path.String() == recordPath.String() {
			return fields, nil
		}
		text, err := readValueText(events, e)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field{key: e.Path[len(e.Path)-1].Key, text: text})
	}
	return nil, fmt.Errorf("convert: event stream ended before record's closing '}'")
}

// readValueText renders a single already-received top-level record-field
// event as CSV cell text: a null field is an empty cell, a string field
// is quoted. A container event instead consumes its whole subtree from
// events and returns the flattened result, which uses its own, different
// scalar rules (see readNestedValueText).
func readValueText(events <-chan entitystream.Event, e entitystream.Event) (string, error) {
	switch e.Value.Kind {
	case entitystream.Null:
		return "", nil
	case entitystream.Boolean:
		return boolText(e.Value.Bool), nil
	case entitystream.Number:
		return e.Value.Text, nil
	case entitystream.String:
		return `"` + e.Value.Text + `"`, nil
	case entitystream.StartObject:
		return renderComplex(events, e.Path, true)
	case entitystream.StartArray:
		return renderComplex(events, e.Path, false)
	default:
		return "", fmt.Errorf("convert: unexpected value kind %v in CSV record", e.Value.Kind)
	}
}

// readNestedValueText renders a scalar found while flattening a complex
// (object or array) field into a single cell. These rules differ from a
// top-level field's: a null renders as the literal text "null" rather
// than an empty cell, and a string renders bare rather than quoted —
// there being no outer cell boundary left to quote against once several
// values are already being joined with " / " inside one cell.
func readNestedValueText(e entitystream.Event) (string, error) {
	switch e.Value.Kind {
	case entitystream.Null:
		return "null", nil
	case entitystream.Boolean:
		return boolText(e.Value.Bool), nil
	case entitystream.Number:
		return e.Value.Text, nil
	case entitystream.String:
		return e.Value.Text, nil
	default:
		return "", fmt.Errorf("convert: unexpected value kind %v in CSV nested value", e.Value.Kind)
	}
}

// renderComplex consumes every event belonging to the container at
// containerPath — recursing into nested containers as it goes — and
// flattens it to a single string once the matching close event arrives.
func renderComplex(events <-chan entitystream.Event, containerPath entitystream.Path, isObject bool) (string, error) {
	var parts []string
	for e := range events {
		if isCloseKind(e.Value.Kind) && e.Path.String() == containerPath.String() {
			if isObject {
				return "(" + strings.Join(parts, " / ") + ")", nil
			}
			return strings.Join(parts, " / "), nil
		}

		var text string
		var err error
		switch e.Value.Kind {
		case entitystream.StartObject:
			text, err = renderComplex(events, e.Path, true)
		case entitystream.StartArray:
			text, err = renderComplex(events, e.Path, false)
		default:
			text, err = readNestedValueText(e)
		}
		if err != nil {
			return "", err
		}

		if isObject {
			parts = append(parts, e.Path[len(e.Path)-1].Key+": "+text)
		} else {
			parts = append(parts, text)
		}
	}
	return "", fmt.Errorf("convert: event stream ended before closing complex value at %q", containerPath.String())
}

func fieldKeys(fields []field) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

func csvLine(cols []string, d Dialect) string {
	return strings.Join(cols, d.FieldSep) + d.LineEnd
}

func isCloseKind(k entitystream.ValueKind) bool {
	return k == entitystream.EndObject || k == entitystream.EndArray
}
