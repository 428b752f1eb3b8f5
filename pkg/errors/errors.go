// Package errors defines the application error taxonomy shared by services
// and handlers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthenticationRequired
	KindAuthorizationDenied
	KindInvalidClientData
	KindNotFound
	KindPersistenceFailure
)

func (k Kind) String() string {
	switch k {
	case KindAuthenticationRequired:
		return "authentication required"
	case KindAuthorizationDenied:
		return "authorization denied"
	case KindInvalidClientData:
		return "invalid client data"
	case KindNotFound:
		return "not found"
	case KindPersistenceFailure:
		return "persistence failure"
	default:
		return "unknown"
	}
}

// Error is a classified error carrying a message safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinel values such as
// ErrAuthenticationRequired work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Kind sentinels for errors.Is.
var (
	ErrAuthenticationRequired = &Error{Kind: KindAuthenticationRequired}
	ErrAuthorizationDenied    = &Error{Kind: KindAuthorizationDenied}
	ErrInvalidClientData      = &Error{Kind: KindInvalidClientData}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrPersistenceFailure     = &Error{Kind: KindPersistenceFailure}
)

func AuthenticationRequired(msg string) error {
	return &Error{Kind: KindAuthenticationRequired, Message: msg}
}

func AuthorizationDenied(msg string) error {
	return &Error{Kind: KindAuthorizationDenied, Message: msg}
}

// InvalidClientData reports a malformed form field.
func InvalidClientData(field, value, reason string) error {
	return &Error{
		Kind:    KindInvalidClientData,
		Message: fmt.Sprintf("%s: %q %s", field, value, reason),
	}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Persistence wraps a data-store error. op names what failed, e.g.
// "update job".
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistenceFailure, Message: "Could not " + op + ", please try again", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(k Kind) int {
	switch k {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindAuthorizationDenied:
		return http.StatusForbidden
	case KindInvalidClientData:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
