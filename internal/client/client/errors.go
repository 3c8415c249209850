package client

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport failure")
	ErrDecode    = errors.New("malformed response body")
	ErrEncode    = errors.New("request body cannot be encoded")
	ErrSession   = errors.New("session storage failure")
)

// RequestError is returned by every failed call. Kind is one of the
// package sentinels; Err is the underlying cause. Both match errors.Is.
type RequestError struct {
	Verb     Verb
	Endpoint string
	// StatusCode is the HTTP status when a response was received, else 0.
	StatusCode int
	Kind       error
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %v (http %d): %v", e.Verb, e.Endpoint, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Verb, e.Endpoint, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
