package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the circuit breaker is open and the
// backend is not being called at all.
var ErrUnavailable = errors.New("backend unavailable")

// Error is a non-2xx backend response. It carries enough for the caller
// to render it to the user; nothing here is retried and nothing is fatal.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
