package entitystream

import (
	"context"

	"github.com/recera/rodata/internal/chansend"
	"github.com/recera/rodata/internal/jsonstream"
	"github.com/recera/rodata/internal/obs"
)

// inactiveIndex marks a container's register as object-addressed: its
// children are reached by Key tokens already pushed onto the path, not by
// a running index this package maintains itself.
const inactiveIndex = -1

// Streamer walks a token stream positioned per a RootEntityType, attaches
// a ValuePath to every token, and pushes the resulting Events onto a
// bounded channel. One Streamer drives exactly one walk; the query
// drivers in internal/provider construct a fresh Streamer per fetched
// page (or per single response, for the non-paginating drivers).
type Streamer struct {
	stream *jsonstream.Stream
	events chan<- Event
	root   RootEntityType

	path Path
	// indexStack has one entry per currently open container: the
	// container's own register, inactiveIndex if it addresses children by
	// key, or the next sibling index if it addresses them positionally.
	indexStack []int
}

// NewStreamer returns a Streamer ready to drive stream, which the caller
// must already have positioned according to root (e.g. just past the
// opening '[' of a `value` array).
func NewStreamer(stream *jsonstream.Stream, root RootEntityType, events chan<- Event) *Streamer {
	return &Streamer{stream: stream, events: events, root: root}
}

// Run drives the walk to completion. For RootArray/RootObject it emits
// the opening synthetic framing event first and the matching closing
// event last — guaranteed even on error, mirroring a scoped acquisition
// with guaranteed release. For RootValue there is no container to frame;
// the walk consumes and emits exactly one scalar token.
func (s *Streamer) Run(ctx context.Context) (err error) {
	switch s.root {
	case RootArray:
		s.indexStack = append(s.indexStack, 0)
		if sendErr := s.emit(ctx, Path{}, Value{Kind: StartArray}); sendErr != nil {
			return sendErr
		}
		defer func() {
			if closeErr := s.emit(ctx, Path{}, Value{Kind: EndArray}); err == nil {
				err = closeErr
			}
		}()
	case RootObject:
		s.indexStack = append(s.indexStack, inactiveIndex)
		if sendErr := s.emit(ctx, Path{}, Value{Kind: StartObject}); sendErr != nil {
			return sendErr
		}
		defer func() {
			if closeErr := s.emit(ctx, Path{}, Value{Kind: EndObject}); err == nil {
				err = closeErr
			}
		}()
	case RootValue:
		return s.runValue(ctx)
	}

	for {
		tok, tokErr := s.stream.Next()
		if tokErr != nil {
			return tokErr
		}
		if tok == nil {
			return contentError(s.path, "token stream ended before the walk reached its root boundary")
		}

		done, walkErr := s.handle(ctx, tok)
		if walkErr != nil {
			return walkErr
		}
		if done {
			return nil
		}
	}
}

func (s *Streamer) runValue(ctx context.Context) error {
	tok, err := s.stream.Next()
	if err != nil {
		return err
	}
	if tok == nil {
		return contentError(s.path, "token stream ended before producing a value")
	}
	val, err := toValue(tok)
	if err != nil {
		return err
	}
	return s.emit(ctx, Path{}, val)
}

func (s *Streamer) handle(ctx context.Context, tok *jsonstream.Token) (done bool, err error) {
	switch tok.Kind {
	case jsonstream.Key:
		s.path = s.path.Push(KeyPos(tok.Text))
		return false, nil

	case jsonstream.StartObject, jsonstream.StartArray:
		if s.active() {
			s.path = s.path.Push(IndexPos(s.currentRegister()))
		}
		val := Value{Kind: StartObject}
		newRegister := inactiveIndex
		if tok.Kind == jsonstream.StartArray {
			val = Value{Kind: StartArray}
			newRegister = 0
		}
		if sendErr := s.emit(ctx, s.path, val); sendErr != nil {
			return false, sendErr
		}
		s.indexStack = append(s.indexStack, newRegister)
		return false, nil

	case jsonstream.EndObject, jsonstream.EndArray:
		if len(s.path) == 0 {
			// The real closing token for the configured root container:
			// consumed as the walk's termination signal, not re-emitted,
			// since Run already owns the synthetic closing event.
			return true, nil
		}
		val := Value{Kind: EndObject}
		if tok.Kind == jsonstream.EndArray {
			val = Value{Kind: EndArray}
		}
		if sendErr := s.emit(ctx, s.path, val); sendErr != nil {
			return false, sendErr
		}
		s.closeContainer()
		return false, nil

	default:
		val, convErr := toValue(tok)
		if convErr != nil {
			return false, convErr
		}
		if s.active() {
			s.path = s.path.Push(IndexPos(s.currentRegister()))
		}
		if sendErr := s.emit(ctx, s.path, val); sendErr != nil {
			return false, sendErr
		}
		s.closeScalar()
		return false, nil
	}
}

func (s *Streamer) active() bool {
	if len(s.indexStack) == 0 {
		return false
	}
	return s.indexStack[len(s.indexStack)-1] != inactiveIndex
}

func (s *Streamer) currentRegister() int {
	return s.indexStack[len(s.indexStack)-1]
}

func (s *Streamer) popPathStep() Position {
	last := s.path[len(s.path)-1]
	parent, _ := s.path.Parent()
	s.path = parent
	return last
}

// advanceSibling updates the now-current top-of-stack register after
// popped has already been removed from the path: an Index step means the
// container we're still inside is array-addressed, so the next sibling is
// popped.Index+1; a Key step means it's object-addressed and the register
// stays inactive.
func (s *Streamer) advanceSibling(popped Position) {
	if len(s.indexStack) == 0 {
		return
	}
	if popped.Kind == PositionIndex {
		s.indexStack[len(s.indexStack)-1] = popped.Index + 1
	}
}

func (s *Streamer) closeContainer() {
	popped := s.popPathStep()
	s.indexStack = s.indexStack[:len(s.indexStack)-1]
	s.advanceSibling(popped)
}

func (s *Streamer) closeScalar() {
	popped := s.popPathStep()
	s.advanceSibling(popped)
}

func (s *Streamer) emit(ctx context.Context, path Path, val Value) error {
	if path.HasODataControlKey() {
		return nil
	}
	if err := chansend.Send(ctx, s.events, Event{Path: path, Value: val}); err != nil {
		return err
	}
	obs.RecordEventEmitted(ctx)
	return nil
}

func toValue(tok *jsonstream.Token) (Value, error) {
	switch tok.Kind {
	case jsonstream.Null:
		return Value{Kind: Null}, nil
	case jsonstream.Boolean:
		return Value{Kind: Boolean, Bool: tok.Bool}, nil
	case jsonstream.Number:
		return Value{Kind: Number, Text: tok.Text}, nil
	case jsonstream.String:
		return Value{Kind: String, Text: tok.Text}, nil
	default:
		return Value{}, contentError(nil, "unexpected token kind %s where a value was expected", tok.Kind)
	}
}
