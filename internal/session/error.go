package session

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthFailed     = errors.New("authentication request failed")
	ErrUnauthorized   = errors.New("token rejected by auth service")
	ErrSessionInvalid = errors.New("session is missing or expired")
)

// StatusError is a non-2xx answer from the auth service.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth service: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("auth service: %d %s", e.Code, e.Message)
}

// Unwrap classifies 401 and 403 as ErrUnauthorized and every other status
// as ErrAuthFailed.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return ErrAuthFailed
}
