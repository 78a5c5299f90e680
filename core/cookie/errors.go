package cookie

import (
	"errors"
	"fmt"
)

// Error variables define specific failure scenarios of cookie access.
// Typed errors below unwrap to them so callers can match with errors.Is.
var (
	// ErrCookieNotFound indicates the requested cookie doesn't exist.
	ErrCookieNotFound = errors.New("cookie not found")

	// ErrInvalidCookie indicates the cookie failed validation before any I/O.
	ErrInvalidCookie = errors.New("invalid cookie")

	// ErrUnsupportedFlag indicates the active backend cannot honor a cookie flag.
	ErrUnsupportedFlag = errors.New("cookie flag not supported by backend")

	// ErrDecode indicates a cookie value is not valid encoded JSON for the requested type.
	ErrDecode = errors.New("failed to decode cookie value")
)

// ValidationError describes a rejected set or remove call.
type ValidationError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cookie %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidCookie.
func (e *ValidationError) Unwrap() error { return ErrInvalidCookie }

// CapabilityError is returned by backends that cannot set protocol-level flags.
type CapabilityError struct {
	Name string
	Flag string
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s cookie %q is not supported in this rendering environment: "+
		"setting HttpOnly or Secure cookies is only possible while the response has not started", e.Flag, e.Name)
}

// Unwrap returns ErrUnsupportedFlag.
func (e *CapabilityError) Unwrap() error { return ErrUnsupportedFlag }

// DecodeError wraps a codec failure for a named cookie.
type DecodeError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v %q: %v", ErrDecode, e.Name, e.Err)
}

// Unwrap returns both ErrDecode and the underlying cause.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// ErrCookieTooLarge indicates the cookie exceeds the maximum allowed size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}

// Unwrap returns ErrInvalidCookie.
func (e ErrCookieTooLarge) Unwrap() error { return ErrInvalidCookie }
