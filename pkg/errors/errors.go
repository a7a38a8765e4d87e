package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an error into one of the categories the API reports to
// callers. Anything unclassified surfaces as a generic failure.
type Kind string

const (
	// KindNotFound is returned when a referenced user, post or comment is absent
	KindNotFound Kind = "not_found"
	// KindValidation is returned for missing or malformed required fields
	KindValidation Kind = "validation"
	// KindConflict is returned on unique-field collisions (email, username)
	KindConflict Kind = "conflict"
	// KindUnauthorized is returned when the actor identity is missing or invalid
	KindUnauthorized Kind = "unauthorized"
	// KindExternal is returned when an external collaborator (object storage,
	// broadcast) is unreachable
	KindExternal Kind = "external_dependency"
	// KindInternal covers everything else
	KindInternal Kind = "internal"
)

// Error is the structured error type carried across component boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a not-found error
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a unique-field collision error
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an authorization error
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// External wraps a failure of an external collaborator
func External(message string, err error) *Error {
	return &Error{Kind: KindExternal, Message: message, Err: err}
}

// Internal wraps an unclassified failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, walking the wrap chain. Errors that never
// passed through this package classify as KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err (or anything it wraps) has the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the caller-facing message for err. Unclassified errors get
// a generic message so internal detail never leaks to the client.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "something went wrong, try again"
}
