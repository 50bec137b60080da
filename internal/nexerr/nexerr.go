// Package nexerr implements the error taxonomy of spec §7. Every error the
// core surfaces to a request boundary carries one of these kinds so the
// HTTP layer can map it to a status code without string-matching messages.
package nexerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error per §7's table.
type Kind string

const (
	// InvalidInput: identifier fails regex, unit missing, or a precondition
	// field is absent.
	InvalidInput Kind = "invalid_input"
	// InsufficientUnit: characterization invoked with fewer than two summaries.
	InsufficientUnit Kind = "insufficient_unit"
	// UpstreamUnavailable: the graph DB or ASP solver could not be reached.
	UpstreamUnavailable Kind = "upstream_unavailable"
	// Timeout: the per-request deadline was exceeded.
	Timeout Kind = "timeout"
	// Internal: the solver returned no model when one was expected, or an
	// invariant was violated.
	Internal Kind = "internal"
)

// Error is a Kind-tagged error with an optional named field (the offending
// request field, per §7's "with the offending field enumerated").
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind wrapping err.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// WithField is New with a named offending field attached.
func WithField(kind Kind, field string, err error) *Error {
	return &Error{Kind: kind, Field: field, Err: err}
}

// Invalid is a convenience constructor for InvalidInput errors.
func Invalid(field, format string, args ...interface{}) *Error {
	return WithField(InvalidInput, field, fmt.Errorf(format, args...))
}

// KindOf extracts the Kind of err, defaulting to Internal when err does not
// wrap an *Error (an un-kinded error reaching the boundary is itself a bug,
// so it is treated as Internal rather than silently passed through).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
