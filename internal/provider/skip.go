package provider

import "github.com/recera/rodata/internal/jsonstream"

// skipValue consumes and discards exactly one JSON value (scalar or a
// fully nested container) from stream, without producing any events. Used
// by the entity-set and function drivers to pass over top-level keys they
// don't care about — any key except "value" and "@odata.nextLink".
func skipValue(stream *jsonstream.Stream) error {
	tok, err := stream.Next()
	if err != nil {
		return err
	}
	if tok == nil {
		return &jsonstream.DecodeError{Kind: jsonstream.ErrUnexpectedEndOfStream}
	}
	switch tok.Kind {
	case jsonstream.StartObject, jsonstream.StartArray:
	default:
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := stream.Next()
		if err != nil {
			return err
		}
		if tok == nil {
			return &jsonstream.DecodeError{Kind: jsonstream.ErrUnexpectedEndOfStream}
		}
		switch tok.Kind {
		case jsonstream.StartObject, jsonstream.StartArray:
			depth++
		case jsonstream.EndObject, jsonstream.EndArray:
			depth--
		}
	}
	return nil
}
