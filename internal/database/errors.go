package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the backend has no record for the request (HTTP 404)
	ErrNotFound = errors.New("no data found")

	// ErrInvalidPayload is returned when a response body does not match its schema
	ErrInvalidPayload = errors.New("invalid payload")
)

// HTTPError is a non-2xx, non-404 response from the statistics backend
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}
