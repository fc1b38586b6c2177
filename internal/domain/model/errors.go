package model

import "fmt"

// UserNotFoundError is returned when the API answers 404 for a username.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found", e.Username)
}

// HTTPError is returned for any other non-2xx API response.
type HTTPError struct {
	StatusCode int
	Reason     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Reason)
}

// ConnectionError is returned when no HTTP response was received at all
// (DNS, refused connection, TLS, timeout).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to GitHub API - %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
