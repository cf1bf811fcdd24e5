package api

import (
	"errors"
	"fmt"
)

// Client errors
var (
	ErrSessionExpired = errors.New("session expired after long inactivity, please sign in again")
	ErrNotFound       = errors.New("requested record was not found")
	ErrServer         = errors.New("server failed to process the request")
	ErrBadResponse    = errors.New("server response could not be parsed")
)

// StatusError carries the HTTP status and URL of a failed request so the
// caller can show a diagnostic alert.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Status, e.URL)
}

// classify maps a status code to its user-facing error class.
func classify(status int, url string) error {
	base := &StatusError{Status: status, URL: url}
	switch {
	case status == 401:
		return fmt.Errorf("%w: %w", ErrSessionExpired, base)
	case status == 404:
		return fmt.Errorf("%w: %w", ErrNotFound, base)
	case status >= 500:
		return fmt.Errorf("%w: %w", ErrServer, base)
	default:
		return base
	}
}
