package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is an HTTP failure reduced to something displayable. Message is
// extracted from the response body when the server provided one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorFromResponse reads the body exactly once and extracts a human-readable
// message: a message/error/detail JSON field if present, else the raw text,
// else a generic status message.
func ErrorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return apiErr
	}

	parsed := map[string]interface{}{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if msg, ok := parsed[key].(string); ok && msg != "" {
				apiErr.Message = msg
				return apiErr
			}
		}
		return apiErr
	}

	apiErr.Message = text
	return apiErr
}

// IsCancellation reports whether err only means the request was superseded or
// the caller went away; those are never shown to the user.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
