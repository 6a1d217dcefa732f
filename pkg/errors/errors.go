package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into one of the caller-visible
// categories. Every kind maps to exactly one HTTP status.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidCredentials
	KindDuplicateUser
	KindUnauthenticated
	KindAccessDenied
	KindNotFound
	KindInvalidInput
	KindInvalidState
	KindConflict
)

// AppError carries a kind, a caller-visible message and an optional
// wrapped cause. The cause is logged but never serialized.
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateUser, KindInvalidInput, KindInvalidState:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func InvalidCredentials() *AppError {
	return &AppError{Kind: KindInvalidCredentials, Message: "invalid credentials"}
}

func DuplicateUser(email string) *AppError {
	return &AppError{Kind: KindDuplicateUser, Message: fmt.Sprintf("email %s is already registered", email)}
}

func Unauthenticated(err error) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: "authentication required", Err: err}
}

func AccessDenied(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return &AppError{Kind: KindAccessDenied, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func InvalidInputf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func Conflict(message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Err: err}
}

func Unexpected(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to
// KindUnexpected for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
