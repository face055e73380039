// Package domainerrors defines the code-based error type shared by all
// registry services. Stores return sentinel errors (pkg/platform/sentinel);
// services translate those into coded domain errors that transports can map
// to status codes.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and tests.
type Code string

const (
	// CodeValidation marks rejected input: a required field was empty or
	// malformed. Retrying with the same input always fails identically.
	CodeValidation Code = "validation"

	// CodeInvariantViolation marks a model constructor rejecting state that
	// would break an entity invariant. Services usually convert this to
	// CodeValidation before it reaches a caller.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeConflict marks a unique-key collision (duplicate driver or
	// customer name).
	CodeConflict Code = "conflict"

	// CodeNotFound marks a referential-integrity failure: the request names
	// an entity that was never registered.
	CodeNotFound Code = "not_found"

	// CodeUnauthorized marks a request that failed the operator gate.
	CodeUnauthorized Code = "unauthorized"

	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error carries a code, a caller-facing message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
