// Package apierror provides the standardized error taxonomy for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
//
// Every failure serializes to the same envelope: {"error": "<message>"}.
package apierror

import "net/http"

// Kind classifies an error into the HTTP status it maps to.
type Kind int

const (
	KindValidation   Kind = iota // malformed / missing input → 400
	KindUnauthorized             // missing / invalid token, bad credentials → 401
	KindForbidden                // role mismatch → 403
	KindNotFound                 // referenced entity absent → 404
	KindConflict                 // uniqueness violation → 409
	KindInternal                 // unexpected store / runtime failure → 500
)

// Error is the canonical API error: a kind plus a human-readable message.
// The message is what the client sees; it must never contain internals.
type Error struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NewUnauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NewForbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NewNotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func NewConflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// NewInternal returns the generic 500 error. The original cause is never
// embedded here — callers log it server-side and return this to the client.
func NewInternal() *Error {
	return &Error{Kind: KindInternal, Message: "Error interno del servidor"}
}
