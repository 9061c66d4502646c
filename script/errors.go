package script

import (
	"errors"
	"fmt"
)

// ErrNoArray is reported for e and r lines that run before any n line.
var ErrNoArray = errors.New("no bit array under test")

// ParseError reports a malformed script line.
type ParseError struct {
	File string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
