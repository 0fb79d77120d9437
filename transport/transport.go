// Package transport defines the network boundary consumed by datasync.
//
// A Client performs the four verbs a resource service needs and reports any
// non-success outcome as an error. Failed responses are reported as *Error,
// which carries the textual status description surfaced to callers.
package transport

import (
	"context"
	"errors"
	"fmt"
)

// Client issues requests against absolute URLs. Every method blocks until the
// request settles or ctx is canceled. Request and response bodies are raw
// encoded bytes; encoding is the caller's concern.
type Client interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
	Put(ctx context.Context, url string, body []byte) ([]byte, error)
	Delete(ctx context.Context, url string) ([]byte, error)
}

// Error is a non-success response from the remote side.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	// Status is the textual status description, e.g. "Not Found".
	Status string
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.URL, e.StatusCode, e.Status)
}

// StatusOf returns the status code carried by err, or 0 when err is not
// (and does not wrap) an *Error.
func StatusOf(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
