package auth

import "errors"

// Kind tags a domain failure with its transport-status equivalent.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindAlreadyExists
)

// Error is the single error variant used across the auth core. The HTTP
// boundary maps Kind to a status code; Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Invalid reports malformed caller input.
func Invalid(msg string) *Error { return &Error{Kind: KindInvalid, Message: msg} }

// Unauthorized reports missing or failed authentication.
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Forbidden reports an authenticated caller lacking rights.
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

// NotFound reports an absent entity in admin paths. Authentication paths
// remap it to Unauthorized so existence never leaks.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// AlreadyExists reports a unique-key conflict.
func AlreadyExists(msg string) *Error { return &Error{Kind: KindAlreadyExists, Message: msg} }

// KindOf extracts the failure kind from an error chain, KindUnknown if the
// chain carries no domain error.
func KindOf(err error) Kind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return KindUnknown
}
