package jwplayer

import (
	"errors"
	"fmt"
)

// ErrNotFound means the feed is well-formed but carries no manifest URL.
// Callers treat it as "nothing live right now", not as a failure.
var ErrNotFound = errors.New("no manifest URL in playlist")

// ParseError reports a response body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing playlist JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports well-formed JSON that does not have the expected shape.
// Path names the first offending element, e.g. "playlist[0].sources[0].file".
type SchemaError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unexpected playlist shape: %s", e.Reason)
	}
	return fmt.Sprintf("unexpected playlist shape at %s: %s", e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
