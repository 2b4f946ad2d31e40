package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Error is a failed backend call. Status is zero for transport failures.
// Message is the most specific text available: the body's message field,
// then its error field, then the HTTP status text or the transport error.
type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "backend unreachable: " + e.Message
	}
	return "backend returned " + http.StatusText(e.Status) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// UserMessage returns the most specific message available.
func (e *Error) UserMessage() string { return e.Message }

// Transport reports whether the request never got an HTTP response.
func (e *Error) Transport() bool { return e.Status == 0 }

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func errorFromResponse(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &Error{
		Status:  resp.StatusCode,
		Message: messageFromBody(raw, resp.StatusCode),
	}
}

func messageFromBody(raw []byte, status int) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(body.Error); m != "" {
			return m
		}
	}
	return http.StatusText(status)
}
