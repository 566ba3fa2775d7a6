package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTimeout          = errors.New("request has timed out")
	ErrMutationInFlight = errors.New("another mutation is already in flight for this order")
)

// ValidationError is a client-side pre-check failure; it never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// HTTPError carries a non-2xx server response back to the caller unchanged.
type HTTPError struct {
	Status           int
	ServerMessage    string
	ValidationErrors []string
}

func (e *HTTPError) Error() string {
	if len(e.ValidationErrors) > 0 {
		return fmt.Sprintf("server returned %d: %s (%s)", e.Status, e.ServerMessage, strings.Join(e.ValidationErrors, "; "))
	}

	return fmt.Sprintf("server returned %d: %s", e.Status, e.ServerMessage)
}

type AuthErrorKind string

const (
	AuthInvalidCredentials AuthErrorKind = `INVALID_CREDENTIALS`
	AuthUserNotFound       AuthErrorKind = `USER_NOT_FOUND`
	AuthNoToken            AuthErrorKind = `NO_TOKEN`
	AuthNetworkUnavailable AuthErrorKind = `NETWORK_UNAVAILABLE`
	AuthUnknown            AuthErrorKind = `UNKNOWN`
)

// AuthError classifies a failed login or registration attempt.
// Message is user-facing and localized; Err keeps the underlying cause.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
