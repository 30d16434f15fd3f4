package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx response from the booking API. Detail carries the
// server-provided message when the body had one, so handlers can show it
// verbatim instead of a generic failure.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("booking api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("booking api: unexpected status %d", e.StatusCode)
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
