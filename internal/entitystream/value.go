package entitystream

// ValueKind discriminates the cases of a Value.
type ValueKind uint8

const (
	StartObject ValueKind = iota
	EndObject
	StartArray
	EndArray
	Null
	Boolean
	Number
	String
)

// Value is the payload half of an Event. Numbers carry their original
// textual lexeme — the producer never parses them into a numeric type, so
// a converter downstream can choose float64, a decimal type, or a raw
// pass-through without the producer taking a position.
type Value struct {
	Kind ValueKind
	Text string
	Bool bool
}

// Event pairs a Value with the ValuePath it was found at. Paths are cloned
// at emission time (Path.Push never mutates), so an Event owns its Path
// outright once it crosses a channel.
type Event struct {
	Path  Path
	Value Value
}

// RootEntityType declares the container shape the caller has already
// positioned the token stream on before handing it to a Streamer.
type RootEntityType uint8

const (
	// RootArray: the stream is positioned just after a '[' — every element
	// streamed is addressed by array index. Used by the entity-set and
	// function query drivers.
	RootArray RootEntityType = iota
	// RootObject: the stream is positioned just after a '{' — every member
	// streamed is addressed by object key. Used by the single-entity
	// query driver.
	RootObject
	// RootValue: the stream is positioned at a single bare scalar with no
	// enclosing container — no synthetic framing event is emitted, and the
	// walk ends after that one value. Not exercised by any of the three
	// original query drivers; used by the supplemented raw-property driver
	// (internal/provider/property.go), which streams the result of
	// PropertyName/$value-style OData requests.
	RootValue
)
