// Package apperror defines the error taxonomy surfaced by the service
// layer. Every error carries a stable machine-readable kind and a message
// safe to return to clients; wrapped internal errors stay server-side.
package apperror

import "errors"

// Kind identifies the class of failure.
type Kind string

const (
	KindAuth        Kind = "auth"         // missing or invalid credential
	KindValidation  Kind = "validation"   // malformed or missing input
	KindNotFound    Kind = "not_found"    // missing or not owned by the caller (never distinguished)
	KindStorage     Kind = "storage"      // object store unavailable or credential failure
	KindPersistence Kind = "persistence" // database read/write failure
)

// Error is a kinded service error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never shown to clients
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// New builds an error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or "" if err is not an apperror.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an apperror of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
