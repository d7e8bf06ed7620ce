package jsonstream

// frame is a container kind pushed onto the decoder's stack when it enters
// an object or array; it is popped again when the matching close token is
// emitted.
type frame uint8

const (
	frameObject frame = iota
	frameArray
)

// prevKind records what the decoder just emitted (or where it sits before
// emitting anything), so the next call knows what punctuation is legal
// next. Combined with the top of the frame stack this fully determines the
// grammar position, the same way the teacher's core.Event stream is always
// resumed from an explicit small piece of state rather than replaying
// history.
type prevKind uint8

const (
	prevNone prevKind = iota
	prevArrayStart
	prevArrayComma
	prevObjectStart
	prevObjectColon
	prevObjectComma
	prevKey
	prevValue
)

// Decoder holds the resumable state of an in-progress JSON parse: the
// stack of open containers and what was last emitted. A zero-value Decoder
// is ready to decode a fresh top-level document.
type Decoder struct {
	stack    []frame
	previous prevKind
}

// NewDecoder returns a Decoder ready to parse one top-level JSON value.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Depth reports how many containers are currently open.
func (d *Decoder) Depth() int { return len(d.stack) }

// Decode attempts to produce the next token from b. On ErrNeedsMore the
// caller must supply more bytes (growing the same logical buffer) and call
// Decode again from the same starting position — no state is lost, since
// Decode restores d's grammar state whenever it returns without a token,
// so punctuation consumed on the failed attempt is read again next time.
//
// A nil Token with a nil error means the document is complete: the top
// level value has been fully emitted and b is at true end of stream.
// Reaching end of stream with a container still open is
// ErrUnexpectedEndOfStream.
func (d *Decoder) Decode(b *Bytes) (*Token, error) {
	previous := d.previous
	tok, err := d.decodeImpl(b)
	if err != nil {
		d.previous = previous
		if IsNeedsMore(err) && b.eof {
			return nil, unexpectedEOS()
		}
		return nil, err
	}
	if tok == nil {
		d.previous = previous
		if !b.eof {
			return nil, needsMore()
		}
		if len(d.stack) > 0 {
			return nil, unexpectedEOS()
		}
	}
	return tok, nil
}

func (d *Decoder) decodeImpl(b *Bytes) (*Token, error) {
	if n := len(d.stack); n > 0 {
		switch d.stack[n-1] {
		case frameObject:
			switch d.previous {
			case prevObjectStart, prevObjectComma:
				return d.decodeObjectKey(b)
			case prevKey:
				return d.decodeColon(b)
			case prevValue:
				return d.decodeObjectContinuation(b)
			}
		case frameArray:
			switch d.previous {
			case prevArrayStart:
				return d.decodeArrayFirstElement(b)
			case prevValue:
				return d.decodeArrayContinuation(b)
			}
			// prevArrayComma falls through to decodeFreshValue below.
		}
	}
	return d.decodeFreshValue(b)
}

func (d *Decoder) peekOrStall(b *Bytes) (byte, error) {
	pb, ok := b.peek()
	if !ok {
		if b.eof {
			return 0, unexpectedEOS()
		}
		return 0, needsMore()
	}
	return pb, nil
}

func (d *Decoder) decodeObjectKey(b *Bytes) (*Token, error) {
	b.consumeWS()
	pb, err := d.peekOrStall(b)
	if err != nil {
		return nil, err
	}
	if pb == '}' && d.previous == prevObjectStart {
		b.consume(1)
		d.stack = d.stack[:len(d.stack)-1]
		d.previous = prevValue
		return &Token{Kind: EndObject}, nil
	}
	if pb != '"' {
		return nil, unexpectedByte(pb)
	}
	key, err := b.decodeString()
	if err != nil {
		return nil, err
	}
	d.previous = prevKey
	return &Token{Kind: Key, Text: key}, nil
}

func (d *Decoder) decodeColon(b *Bytes) (*Token, error) {
	b.consumeWS()
	if err := b.expectBytes([]byte{':'}); err != nil {
		return nil, err
	}
	d.previous = prevObjectColon
	return d.decodeImpl(b)
}

func (d *Decoder) decodeObjectContinuation(b *Bytes) (*Token, error) {
	b.consumeWS()
	pb, err := d.peekOrStall(b)
	if err != nil {
		return nil, err
	}
	switch pb {
	case ',':
		b.consume(1)
		d.previous = prevObjectComma
		return d.decodeImpl(b)
	case '}':
		b.consume(1)
		d.stack = d.stack[:len(d.stack)-1]
		d.previous = prevValue
		return &Token{Kind: EndObject}, nil
	default:
		return nil, unexpectedByte(pb)
	}
}

func (d *Decoder) decodeArrayFirstElement(b *Bytes) (*Token, error) {
	b.consumeWS()
	pb, err := d.peekOrStall(b)
	if err != nil {
		return nil, err
	}
	if pb == ']' {
		b.consume(1)
		d.stack = d.stack[:len(d.stack)-1]
		d.previous = prevValue
		return &Token{Kind: EndArray}, nil
	}
	return d.decodeFreshValue(b)
}

func (d *Decoder) decodeArrayContinuation(b *Bytes) (*Token, error) {
	b.consumeWS()
	pb, err := d.peekOrStall(b)
	if err != nil {
		return nil, err
	}
	switch pb {
	case ',':
		b.consume(1)
		d.previous = prevArrayComma
		return d.decodeImpl(b)
	case ']':
		b.consume(1)
		d.stack = d.stack[:len(d.stack)-1]
		d.previous = prevValue
		return &Token{Kind: EndArray}, nil
	default:
		return nil, unexpectedByte(pb)
	}
}

func (d *Decoder) decodeFreshValue(b *Bytes) (*Token, error) {
	tok, err := b.decodeValue()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	switch tok.Kind {
	case StartObject:
		d.stack = append(d.stack, frameObject)
		d.previous = prevObjectStart
	case StartArray:
		d.stack = append(d.stack, frameArray)
		d.previous = prevArrayStart
	default:
		d.previous = prevValue
	}
	return tok, nil
}

// decodeValue consumes one JSON value lexeme (null/true/false/number/
// string/structural bracket) with no awareness of container nesting; the
// nesting bookkeeping lives one level up in Decoder.
func (c *Bytes) decodeValue() (*Token, error) {
	c.consumeWS()
	b, ok := c.peek()
	if !ok {
		return nil, nil
	}
	switch {
	case b == 'n':
		if err := c.expectBytes([]byte("null")); err != nil {
			return nil, err
		}
		return &Token{Kind: Null}, nil
	case b == 't':
		if err := c.expectBytes([]byte("true")); err != nil {
			return nil, err
		}
		return &Token{Kind: Boolean, Bool: true}, nil
	case b == 'f':
		if err := c.expectBytes([]byte("false")); err != nil {
			return nil, err
		}
		return &Token{Kind: Boolean, Bool: false}, nil
	case b == '-' || (b >= '0' && b <= '9'):
		text, err := c.decodeNumber()
		if err != nil {
			return nil, err
		}
		return &Token{Kind: Number, Text: text}, nil
	case b == '"':
		s, err := c.decodeString()
		if err != nil {
			return nil, err
		}
		return &Token{Kind: String, Text: s}, nil
	case b == '{':
		c.consume(1)
		return &Token{Kind: StartObject}, nil
	case b == '}':
		c.consume(1)
		return &Token{Kind: EndObject}, nil
	case b == '[':
		c.consume(1)
		return &Token{Kind: StartArray}, nil
	case b == ']':
		c.consume(1)
		return &Token{Kind: EndArray}, nil
	default:
		return nil, unexpectedByte(b)
	}
}

// decodeNumber consumes a full JSON number lexeme and returns it verbatim;
// the tokenizer never parses numbers into a numeric type, since the final
// destination format (CSV/JSON/XML) may need the original representation
// (e.g. to preserve trailing zeros) more than it needs a float64. The
// grammar walk reads one byte past the lexeme to find where it ends, so the
// view is reset to just after the lexeme before returning.
func (c *Bytes) decodeNumber() (string, error) {
	start := c.b
	consumed := 0
	if b, ok := c.peek(); ok && b == '-' {
		c.consume(1)
		consumed = 1
		if _, ok := c.peek(); !ok {
			if c.eof {
				return "", unexpectedEOS()
			}
			return "", needsMore()
		}
	}
	n, err := c.unsignedNumber()
	if err != nil {
		return "", err
	}
	total := consumed + n
	c.b = start[total:]
	return string(start[:total]), nil
}
