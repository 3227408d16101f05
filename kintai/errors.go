package kintai

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict marks an operation whose open/closed precondition is
	// violated, e.g. clocking in over an already-open session.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a transition with nothing to act on: no record,
	// no open session, or no open break.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange marks a report query whose end precedes its start.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidInterval marks interval arithmetic called with end before
	// start. The state machine's guards make it unreachable under a sane
	// clock; it exists as a defensive check, not a user-facing condition.
	ErrInvalidInterval = errors.New("invalid interval")
)

// Error pairs a kind sentinel with a human-readable message. Callers match
// the kind with errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func invalidRangef(format string, args ...any) error {
	return &Error{Kind: ErrInvalidRange, Msg: fmt.Sprintf(format, args...)}
}

func invalidIntervalf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInterval, Msg: fmt.Sprintf(format, args...)}
}
