package jsonstream

import (
	"context"
	"io"

	"github.com/recera/rodata/internal/obs"
)

// initialBufferSize matches the producer pipeline's starting input buffer
// before any doubling is needed.
const initialBufferSize = 1 << 20 // 1,048,576 bytes

// Stream drives a Decoder over bytes pulled incrementally from src. It
// holds a single growable buffer: fully-consumed bytes at the front are
// compacted away before every refill, and the buffer doubles only when a
// single token's lexeme genuinely will not fit in what compaction freed up.
// Tokens are requested one at a time through Next, so the caller never
// needs the whole response body in memory at once.
type Stream struct {
	src     io.Reader
	decoder *Decoder
	buf     []byte
	start   int // buf[:start] is fully consumed and eligible for compaction
	end     int // buf[start:end] is the valid, not-yet-decoded window
	eof     bool
}

// NewStream returns a Stream that reads from src on demand.
func NewStream(src io.Reader) *Stream {
	return &Stream{
		src:     src,
		decoder: NewDecoder(),
		buf:     make([]byte, initialBufferSize),
	}
}

// Next returns the next token in the document. A nil Token with a nil
// error means the document is complete. Any other error aborts the stream;
// the Stream must not be reused afterward.
func (s *Stream) Next() (*Token, error) {
	for {
		view := NewBytes(s.buf[s.start:s.end])
		view.eof = s.eof
		tok, err := s.decoder.Decode(&view)
		if err == nil {
			s.start = s.end - view.Len()
			if tok != nil {
				obs.RecordTokensDecoded(context.Background(), 1)
			}
			return tok, nil
		}
		if !IsNeedsMore(err) {
			return nil, err
		}
		if s.eof {
			// Decode already upgrades NeedsMore to UnexpectedEndOfStream
			// once view.eof is true, so this should be unreachable; treat
			// it as the same hard failure if it ever happens.
			return nil, unexpectedEOS()
		}
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
}

// fill compacts away already-consumed bytes, grows the buffer if the
// remaining free space is exhausted, and pulls one Read worth of new
// bytes from the source.
func (s *Stream) fill() error {
	if s.start > 0 {
		n := copy(s.buf, s.buf[s.start:s.end])
		s.end = n
		s.start = 0
	}
	if s.end == len(s.buf) {
		grown := make([]byte, len(s.buf)*2)
		copy(grown, s.buf[:s.end])
		s.buf = grown
	}

	n, err := s.src.Read(s.buf[s.end:])
	s.end += n
	if err != nil {
		if err == io.EOF {
			s.eof = true
			return nil
		}
		return err
	}
	if n == 0 {
		// A conforming io.Reader blocks or errors rather than returning
		// (0, nil) indefinitely; treat it as end of stream rather than
		// spin the retry loop forever.
		s.eof = true
	}
	return nil
}
