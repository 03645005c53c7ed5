// Package apperror defines the typed errors shared by the service,
// repository, and handler layers.
//
// Each error kind is a sentinel that can be tested with errors.Is, wrapped
// in an *AppError carrying the human-readable message. The HTTP layer maps
// kinds to status codes in exactly one place (handler/response.go); nothing
// below the handlers knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrUpstream        = errors.New("upstream error")
)

type AppError struct {
	Err     error  // sentinel categorising the failure
	Message string // human-readable error message
	Field   string // optional: input field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized covers every authentication failure: wrong credentials,
// bad signature, expired token, unknown subject. The message stays the
// same for all of them — a more specific one would tell a caller which
// part of their guess was right.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// UpstreamTimeout indicates the upstream API did not answer within the
// request deadline. HTTP handlers map this to 504 Gateway Timeout.
func UpstreamTimeout(message string) *AppError {
	return &AppError{
		Err:     ErrUpstreamTimeout,
		Message: message,
	}
}

// Upstream is the generic fallback for upstream failures that are neither
// a missing user nor a timeout.
func Upstream(message string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: message,
	}
}
