package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuth marks invalid credentials. Fatal to the session, never retried.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound marks a referenced device or record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransport marks network-level failures, including timeouts. Retryable.
	ErrTransport = errors.New("transport error")
)

// statusError maps a non-2xx response to the error kind the client applies
// policy on.
func statusError(op string, status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d", ErrAuth, op, status)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s returned status %d", ErrNotFound, op, status)
	default:
		return fmt.Errorf("%w: %s returned status %d", ErrTransport, op, status)
	}
}

func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %s", ErrTransport, op, err)
}
