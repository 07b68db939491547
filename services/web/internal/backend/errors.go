package backend

import (
	"errors"
	"fmt"
)

// ErrThrottled is returned when the outbound limiter would make a request
// wait longer than the configured maximum.
var ErrThrottled = errors.New("backend request throttled")

// RejectedError is a response that arrived but reports failure: a non-2xx
// status, or ok=false in the body.
type RejectedError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s rejected with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s rejected with status %d: %s", e.Endpoint, e.Status, e.Detail)
}

// TransportError covers everything that kept a usable response from arriving:
// connection failures, cancelled contexts, throttling, and bodies that are not JSON.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
