package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a line that has a recognized shape but invalid fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStreamUnavailable marks a log source that cannot be opened or fetched.
	ErrStreamUnavailable = errors.New("stream unavailable")
)

// MalformedRecordError describes why a recognized line was rejected.
type MalformedRecordError struct {
	Kind   Kind
	Line   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record %q: %s", e.Kind, e.Line, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

func malformed(kind Kind, line, format string, args ...any) error {
	return &MalformedRecordError{
		Kind:   kind,
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	}
}
