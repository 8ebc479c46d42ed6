package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("authentication required")
	ErrNetwork           = errors.New("network error")
	ErrNoCredential      = errors.New("no credential")
	ErrInvalidTransition = errors.New("invalid flow transition")
	ErrStaleResult       = errors.New("stale result")
	ErrCallInFlight      = errors.New("request already in flight")
	ErrReauthRequired    = errors.New("re-authentication required")
)

// ValidationError reports a client-side rule violation. No request is sent
// when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("http status %d", e.Code)
	}
	return fmt.Sprintf("http status %d - %s", e.Code, body)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if e.Code == http.StatusNotFound {
		return errors.Join(ErrNotFound, ErrNetwork)
	}
	return ErrNetwork
}

type Kind int

const (
	KindOther Kind = iota
	KindValidation
	KindAuth
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	default:
		return "other"
	}
}

// Classify maps an error onto the taxonomy the UI reports on. Auth wins over
// everything else so a 401 never surfaces as a generic failure.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrReauthRequired):
		return KindAuth
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindOther
	}
}

// UserMessage renders err as a one-line notice for the status bar and CLI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrCallInFlight) {
		return "Please wait for the current request to finish."
	}
	switch Classify(err) {
	case KindValidation:
		var v *ValidationError
		if errors.As(err, &v) {
			return v.Message
		}
	case KindAuth:
		return "Authentication required. Please log in again."
	case KindNetwork:
		return "Could not reach LogBook: " + err.Error()
	}
	return err.Error()
}
