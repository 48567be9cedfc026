package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindStore
	KindUpstream
)

// Error is the error type returned by services. Message is what the client sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Store wraps a database failure.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf("Database error: %v", err), Err: err}
}

// Upstream wraps a transport failure while talking to the generation API.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf("Upstream error: %v", err), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// StatusCode maps a kind to the HTTP status the API answers with.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
