package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingURLParam indicates a path-level placeholder in the URL template
// had no value supplied. Matched with errors.Is.
var ErrMissingURLParam = errors.New("missing URL parameter")

// UnexpectedHTTPError is returned for a non-2xx response that does not carry
// an RFC 7807 problem body. The decoded body is kept for diagnostics only.
type UnexpectedHTTPError struct {
	Status  int
	Data    any
	Headers http.Header
}

func (e *UnexpectedHTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP response: status %d", e.Status)
}

// TransportError wraps a failure to complete the exchange at all: connection
// refused, DNS failure, or the request timing out. It is distinct from both
// problem and non-problem HTTP failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
