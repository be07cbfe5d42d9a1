package format

import (
	"errors"
	"fmt"
)

var (
	ErrParse         = errors.New("parse error")
	ErrUnknownFormat = errors.New("unknown format")
)

// ParseError reports malformed input for a format. Line is 1-based, 0 when
// the problem is not tied to a line.
type ParseError struct {
	Format ID
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s", e.Format)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func parseErr(id ID, line int, format string, args ...any) *ParseError {
	return &ParseError{Format: id, Line: line, Reason: fmt.Sprintf(format, args...)}
}

type UnknownFormatError struct {
	ID ID
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown lyric format: %q", string(e.ID))
}

func (e *UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }
