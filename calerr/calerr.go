// Package calerr defines the error taxonomy shared by the calendar packages.
//
// Two kinds of failure exist:
//   - validation errors: the caller passed a malformed calendar value
//     (month 13, 1582-10-10, year 0, ...)
//   - convergence errors: the ephemeris root finder exceeded its iteration cap,
//     which means the engine itself is at fault
//
// Callers distinguish them with IsInvalid and IsConvergence.
package calerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalid       = errors.New("invalid calendar value")
	ErrNoConvergence = errors.New("ephemeris did not converge")
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindInvalid     Kind = "invalid"
	KindConvergence Kind = "convergence"
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Op    string // operation that failed, e.g. "solar.NewDay"
	Kind  Kind
	Value string // optional: the offending value as text
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Value != "" {
		base += fmt.Sprintf(" (%s)", e.Value)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Invalid builds a validation error for op. The value is formatted with
// fmt.Sprintf(format, args...).
func Invalid(op string, format string, args ...any) error {
	return &Error{
		Op:    op,
		Kind:  KindInvalid,
		Value: fmt.Sprintf(format, args...),
		Err:   ErrInvalid,
	}
}

// NoConvergence builds a convergence error for op.
func NoConvergence(op string, format string, args ...any) error {
	return &Error{
		Op:    op,
		Kind:  KindConvergence,
		Value: fmt.Sprintf(format, args...),
		Err:   ErrNoConvergence,
	}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsConvergence reports whether err is a convergence error.
func IsConvergence(err error) bool {
	return errors.Is(err, ErrNoConvergence)
}
