package jsonstream

func isWhitespace(c byte) bool {
	switch c {
	case 0x09, 0x0a, 0x0d, 0x20:
		return true
	default:
		return false
	}
}

// Bytes is a view over a contiguous byte slice plus an end-of-stream flag.
// Once EOF is true for a logical stream, no more bytes will ever arrive.
// It is a small value type; passing it by value copies the slice header,
// not the backing array, so cloning it to try a sub-parse is cheap.
type Bytes struct {
	b   []byte
	eof bool
}

// NewBytes wraps bytes that are not yet the final chunk of their stream.
func NewBytes(b []byte) Bytes { return Bytes{b: b} }

// NewEOFBytes wraps bytes known to be the final chunk of their stream.
func NewEOFBytes(b []byte) Bytes { return Bytes{b: b, eof: true} }

// Len returns the length of the remaining unconsumed bytes.
func (c *Bytes) Len() int { return len(c.b) }

// Remaining returns the yet-unconsumed byte slice.
func (c *Bytes) Remaining() []byte { return c.b }

func (c *Bytes) consume(n int) { c.b = c.b[n:] }

func (c *Bytes) peek() (byte, bool) {
	if len(c.b) == 0 {
		return 0, false
	}
	return c.b[0], true
}

type consumeStatus uint8

const (
	consumed consumeStatus = iota
	endOfStream
	endOfChunk
)

func (c *Bytes) consumeNext() (byte, consumeStatus) {
	if len(c.b) > 0 {
		b := c.b[0]
		c.b = c.b[1:]
		return b, consumed
	}
	if c.eof {
		return 0, endOfStream
	}
	return 0, endOfChunk
}

func (c *Bytes) consumeWS() {
	i := 0
	for i < len(c.b) && isWhitespace(c.b[i]) {
		i++
	}
	c.b = c.b[i:]
}

// expectBytes consumes len(want) bytes, confirming they equal want. It
// tolerates the available bytes being a proper prefix of want by returning
// ErrNeedsMore — this is how literal matching ("null", "true", "false")
// resumes across a chunk boundary without having mismatched yet.
func (c *Bytes) expectBytes(want []byte) error {
	n := len(want)
	if len(c.b) >= n {
		for i := 0; i < n; i++ {
			if c.b[i] != want[i] {
				return unexpectedByte(c.b[i])
			}
		}
		c.consume(n)
		return nil
	}
	sub := len(c.b)
	for i := 0; i < sub; i++ {
		if c.b[i] != want[i] {
			return unexpectedByte(c.b[i])
		}
	}
	return needsMore()
}
