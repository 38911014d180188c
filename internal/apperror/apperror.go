// Package apperror classifies failures of portal interactions so each view
// can decide how to surface them.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an application error.
type Kind int

const (
	// KindUnknown is for unclassified errors.
	KindUnknown Kind = iota
	// KindNetwork covers transport failures and 5xx responses.
	KindNetwork
	// KindAuth means the caller is not authenticated or not allowed.
	KindAuth
	// KindValidation is a client-side required-field failure; no request was sent.
	KindValidation
	// KindRejected is a business-rule rejection reported by the server.
	KindRejected
	// KindNotFound is a missing resource.
	KindNotFound
	// KindConflict is a local precondition failure (e.g. course not yet complete-able).
	KindConflict
)

// FallbackMessage is shown when the server gives no error message.
const FallbackMessage = "Something went wrong"

var (
	// ErrUnauthenticated is returned when no current user is available.
	ErrUnauthenticated = New(KindAuth, "not authenticated", nil)
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = New(KindNotFound, "not found", nil)
)

// Error is a categorized error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so errors.Is(err, ErrNotFound) holds
// for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Status == 0 && t.Err == nil
}

// StatusCode returns the HTTP status code to answer with.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNetwork:
		return http.StatusBadGateway
	case KindAuth:
		if e.Status == http.StatusForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindRejected:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates an Error.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation wraps a required-field failure.
func Validation(err error) *Error {
	return New(KindValidation, "missing required fields", err)
}

// FromStatus classifies a non-2xx response. An empty message falls back
// to FallbackMessage.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = FallbackMessage
	}
	kind := KindRejected
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= http.StatusInternalServerError:
		kind = KindNetwork
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return FallbackMessage
}

// StatusCode returns the HTTP status for err, 500 for uncategorized errors.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
