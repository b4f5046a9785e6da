package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not allowed in the resource's current state,
// e.g. deleting an account that transactions still reference.
var ErrConflict = errors.New("resource conflict")

// ErrUnauthorized indicates a missing or invalid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSuperseded indicates that a newer request for the same view replaced this one.
var ErrSuperseded = errors.New("request superseded")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
