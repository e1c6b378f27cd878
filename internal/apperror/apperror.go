// Package apperror classifies errors into the responses clients see.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// KindUpstream covers every error not classified otherwise, typically a
	// failing document store.
	KindUpstream Kind = iota
	KindInvalidRequest
	KindNotFound
)

// Error is an error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidRequest reports missing or malformed input.
func InvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// NotFound reports a missing resource, wrapping the cause.
func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// KindOf returns the kind of err, KindUpstream when unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstream
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message. Upstream failures get a generic
// message so store internals never reach clients.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUpstream {
		return appErr.Message
	}
	return "internal server error"
}
