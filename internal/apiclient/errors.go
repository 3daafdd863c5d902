package apiclient

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotFound is returned when a merchant-scoped resource does not exist.
var ErrNotFound = errors.New("resource not found")

// APIError is a 4xx/5xx rejection carrying the first message the backend reported.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Message returns the user-facing message of err when it is an APIError, otherwise fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractDetail reads the backend's `detail` field, which is either a plain string or a list of
// validation errors of which only the first message is kept.
func extractDetail(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return fallback
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
		return fallback
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}
	return fallback
}
