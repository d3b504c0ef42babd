package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks. The typed errors below match them.
var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("server error")
	ErrNotFound     = errors.New("not found")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingToken     = errors.New("token missing from login response")
)

// GenericFailureMessage is shown when the server gave no usable message.
const GenericFailureMessage = "Erreur réseau, veuillez réessayer"

// NetworkError is a transport failure: timeout, refused connection, DNS.
type NetworkError struct {
	Method  string
	Path    string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s %s: request timed out", e.Method, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// AuthError is a 401 from the server. The HTTP client tears the session down
// before returning it.
type AuthError struct {
	Path    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// FieldError is one failed client-side form check.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects client-side form failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ServerError is any non-2xx answer other than 401 and 404.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Is(target error) bool { return target == ErrServer }

// NotFoundError means the addressed resource does not exist.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "resource not found: " + e.Path
	}
	return e.Message
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var (
		ae *AuthError
		se *ServerError
		ne *NotFoundError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &ae):
		return ae.Error()
	case errors.As(err, &se):
		return se.Error()
	case errors.As(err, &ne):
		return ne.Error()
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrNetwork):
		return GenericFailureMessage
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
