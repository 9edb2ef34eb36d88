package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound signals a missing remote resource (e.g. a stale conversation id).
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals input rejected up front, client- or server-side.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransport signals a network or server failure.
	ErrTransport = errors.New("transport failure")
	// ErrEmptyQuery signals a send with nothing but whitespace.
	ErrEmptyQuery = errors.New("empty query")
	// ErrQueryInFlight signals a send while another query is outstanding.
	ErrQueryInFlight = errors.New("query already in flight")
)

// APIError wraps a taxonomy sentinel with the HTTP status and the detail
// string the server returned. Use errors.Is() against the sentinels.
type APIError struct {
	Status int
	Detail string
	kind   error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.kind.Error())
}

func (e *APIError) Unwrap() error { return e.kind }

// NewAPIError classifies an HTTP status into the error taxonomy:
// 404 -> ErrNotFound, other 4xx -> ErrInvalidInput, the rest -> ErrTransport.
func NewAPIError(status int, detail string) error {
	kind := ErrTransport
	switch {
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status >= 400 && status < 500:
		kind = ErrInvalidInput
	}
	return &APIError{Status: status, Detail: detail, kind: kind}
}
