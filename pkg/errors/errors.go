package errors

import (
	"errors"
	"fmt"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource already exists")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation error")
	ErrUpstream       = errors.New("upstream failure")
	ErrMaintenance    = errors.New("service under maintenance")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError carries a client-facing message alongside the sentinel it classifies as.
type AppError struct {
	Code    string
	Message string
	Err     error
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

// Constructors

// Validation reports input that failed a shape or constraint check.
func Validation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Err: ErrValidation}
}

// Unauthorized reports a missing or unresolved actor identity.
func Unauthorized(msg string) *AppError {
	return &AppError{Code: "AUTHENTICATION_ERROR", Message: msg, Err: ErrUnauthorized}
}

// Forbidden reports an identified actor lacking permission for the target.
func Forbidden(msg string) *AppError {
	return &AppError{Code: "AUTHORIZATION_ERROR", Message: msg, Err: ErrForbidden}
}

func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Err: ErrBadRequest}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

// Upstream reports a server-side failure of a collaborator (storage, database, mail).
// The cause is deliberately not attached so it never reaches a client.
func Upstream(msg string) *AppError {
	return &AppError{Code: "UPSTREAM_ERROR", Message: msg, Err: ErrUpstream}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", Err: ErrInvalidCredentials}
}

func Maintenance(msg string) *AppError {
	return &AppError{Code: "MAINTENANCE", Message: msg, Err: ErrMaintenance}
}

// Message returns the client-facing message of err when it is an AppError.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
