package domain

import (
	"errors"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrNoCredential      = errors.New("no credential stored")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNetwork           = errors.New("network failure")
	ErrInvalidToken      = errors.New("token is invalid or expired")
)

// Credentials is the login payload. Lat/Lng are sent only when the caller
// knows its position.
type Credentials struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}
