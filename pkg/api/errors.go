package api

import (
	"errors"
	"fmt"
)

// Error is the single transport/HTTP error kind the client reports. The
// store records it opaquely; status and URL are kept for logs and debugging.
type Error struct {
	Method  string
	URL     string
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s %s: %s", e.Method, e.URL, e.Message)
}

// StatusError reports whether err is an api.Error with the given HTTP status.
func StatusError(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
