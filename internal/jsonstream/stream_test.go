package jsonstream

import (
	"bytes"
	"io"
	"testing"
)

// collect drains a Stream to completion, or fails the test on error.
func collect(t *testing.T, s *Stream) []Token {
	t.Helper()
	var out []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tok == nil {
			return out
		}
		out = append(out, *tok)
	}
}

func kinds(toks []Token) []TokenKind {
	ks := make([]TokenKind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestStream_WholeDocument(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kinds []TokenKind
	}{
		{
			name:  "empty object",
			body:  `{}`,
			kinds: []TokenKind{StartObject, EndObject},
		},
		{
			name:  "empty array",
			body:  `[]`,
			kinds: []TokenKind{StartArray, EndArray},
		},
		{
			name:  "flat object",
			body:  `{"a":1,"b":"two","c":true,"d":null}`,
			kinds: []TokenKind{StartObject, Key, Number, Key, String, Key, Boolean, Key, Null, EndObject},
		},
		{
			name:  "array of objects",
			body:  `[{"id":1},{"id":2}]`,
			kinds: []TokenKind{StartArray, StartObject, Key, Number, EndObject, StartObject, Key, Number, EndObject, EndArray},
		},
		{
			name:  "nested containers",
			body:  `{"value":[1,2,{"nested":[]}]}`,
			kinds: []TokenKind{StartObject, Key, StartArray, Number, Number, StartObject, Key, StartArray, EndArray, EndObject, EndArray, EndObject},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(bytes.NewReader([]byte(tt.body)))
			got := kinds(collect(t, s))
			if len(got) != len(tt.kinds) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.kinds), tt.kinds)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.kinds[i])
				}
			}
		})
	}
}

func TestStream_TokenValues(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte(`{"name":"O'Brien \"the great\"","n":-12.5e2}`)))
	toks := collect(t, s)
	want := []Token{
		{Kind: StartObject},
		{Kind: Key, Text: "name"},
		{Kind: String, Text: `O'Brien \"the great\"`},
		{Kind: Key, Text: "n"},
		{Kind: Number, Text: "-12.5e2"},
		{Kind: EndObject},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, toks[i], want[i])
		}
	}
}

// byteAtATimeReader yields one byte per Read call, forcing every possible
// chunk partition of the document through the decoder's NeedsMore retry
// path.
type byteAtATimeReader struct {
	data []byte
	pos  int
}

func (r *byteAtATimeReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:r.pos+1])
	r.pos += n
	return n, nil
}

func TestStream_ResumesAcrossEveryChunkPartition(t *testing.T) {
	body := `{"items":[{"id":1,"tag":"aé"},{"id":2,"tag":null}],"@odata.nextLink":"https://x/next"}`

	whole := NewStream(bytes.NewReader([]byte(body)))
	want := collect(t, whole)

	chunked := NewStream(&byteAtATimeReader{data: []byte(body)})
	got := collect(t, chunked)

	if len(got) != len(want) {
		t.Fatalf("chunked decode produced %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStream_UnexpectedEndOfStream(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte(`{"a":`)))
	_, err := collectUntilError(s)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrUnexpectedEndOfStream {
		t.Fatalf("got err = %v, want ErrUnexpectedEndOfStream", err)
	}
}

func TestStream_InvalidUnicodeEscape(t *testing.T) {
	s := NewStream(bytes.NewReader([]byte(`"\ud800"`)))
	_, err := collectUntilError(s)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrInvalidUnicodeEscape {
		t.Fatalf("got err = %v, want ErrInvalidUnicodeEscape", err)
	}
	if de.CodePoint != 0xd800 {
		t.Errorf("got CodePoint = %x, want d800", de.CodePoint)
	}
}

func collectUntilError(s *Stream) ([]Token, error) {
	var out []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return out, err
		}
		if tok == nil {
			return out, nil
		}
		out = append(out, *tok)
	}
}
