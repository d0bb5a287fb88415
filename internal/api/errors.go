package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx backend response. Detail carries the server's "detail"
// string when one was provided.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// Message returns the server detail, or fallback when the server sent none.
// Admin forms surface validation errors this way.
func (e *Error) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// errorBody matches the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ErrorDetail extracts the server detail from err, or fallback for transport
// failures and detail-less responses.
func ErrorDetail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}
