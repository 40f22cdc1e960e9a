package weather

import (
	"errors"
	"fmt"
)

// ErrNoPosition is returned when a fetch is attempted without coordinates.
var ErrNoPosition = errors.New("no position available")

// TransportError reports a non-success HTTP status from a remote service.
type TransportError struct {
	Service    string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Service, e.StatusCode)
}

// NetworkError reports that a request could not complete.
type NetworkError struct {
	Service string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Service, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports a payload that could not be decoded or is missing fields.
type MalformedResponseError struct {
	Service string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Service, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
