package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the normalized shape of every failed API call. It is built
// from the server's error body when one can be parsed, otherwise it is
// synthesized from the status code (StatusCode is 0 for network failures).
type APIError struct {
	StatusCode int     `json:"statusCode"`
	Label      string  `json:"error"`
	Message    Message `json:"message"`
	Err        error   `json:"-"`
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Label, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Label, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets callers match status classes with errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// NewAPIError builds an error for status with a single message line.
func NewAPIError(status int, msg string) *APIError {
	return &APIError{
		StatusCode: status,
		Label:      http.StatusText(status),
		Message:    Message{msg},
	}
}

// Message is either a single human string or a list of per-field
// validation complaints on the wire.
type Message []string

func (m Message) String() string {
	return strings.Join(m, "; ")
}

func (m Message) MarshalJSON() ([]byte, error) {
	if len(m) == 1 {
		return json.Marshal(m[0])
	}
	return json.Marshal([]string(m))
}

func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*m = list
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Message{s}
		return nil
	}
}
