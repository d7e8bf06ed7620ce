package entitystream

import "fmt"

// ContentError reports a structural violation discovered while walking the
// token stream: the token stream ended, or produced an unexpected shape,
// before the walk reached a well-formed boundary. Path carries the last
// known location so a diagnostic can point at where the document went bad.
type ContentError struct {
	Path Path
	Msg  string
}

func (e *ContentError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("entitystream: %s", e.Msg)
	}
	return fmt.Sprintf("entitystream: %s (at %s)", e.Msg, e.Path.String())
}

func contentError(path Path, format string, args ...any) error {
	return &ContentError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
