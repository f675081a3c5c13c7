// Package apperror declares the error kinds used across llamago (spec §7).
//
// Every error the engine raises is one of four kinds: a bad hyperparameter
// file (Configuration), a bad weight/vocab file (Io), an out-of-range token
// or position (Bounds), or an internal invariant violation (Shape). Callers
// test the kind with KindOf, or with errors.Is against another *Error of
// the same Kind, and use errors.As to recover the *Error and its cause.
// Kind values are plain strings, not errors, so they cannot be passed to
// errors.Is directly.
package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies one of the four error categories from spec §7.
type Kind string

const (
	Configuration Kind = "configuration"
	Io            Kind = "io"
	Bounds        Kind = "bounds"
	Shape         Kind = "shape"
)

// Error wraps a Kind, a human-readable message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so
// errors.Is(err, &apperror.Error{Kind: apperror.Bounds}) matches any
// Bounds error in err's chain.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Configurationf builds a ConfigurationError: hyperparameter file missing,
// unparseable, or violating a range/divisibility constraint.
func Configurationf(cause error, format string, args ...any) *Error {
	return newf(Configuration, cause, format, args...)
}

// Iof builds an IoError: weight or vocab file missing, truncated, or
// shorter than required.
func Iof(cause error, format string, args ...any) *Error {
	return newf(Io, cause, format, args...)
}

// Boundsf builds a BoundsError: token id >= vocab_size, or position >=
// seq_len.
func Boundsf(cause error, format string, args ...any) *Error {
	return newf(Bounds, cause, format, args...)
}

// Shapef builds a ShapeError: an internal invariant violation that should
// not occur with validated inputs.
func Shapef(cause error, format string, args ...any) *Error {
	return newf(Shape, cause, format, args...)
}

// KindOf reports the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
