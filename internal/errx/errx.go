package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// SystemErrorMessage is the public message for unexpected failures.
const SystemErrorMessage = "internal server error"

// AppError wraps an underlying error with an HTTP status and a message that
// is safe to show to the caller.
type AppError struct {
	Err     error
	Status  int
	Message string
	Fields  map[string]string
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

func New(err error, status int, message string) *AppError {
	return &AppError{Err: err, Status: status, Message: message}
}

// Invalid reports field-level validation messages.
func Invalid(message string, fields map[string]string) *AppError {
	return &AppError{Status: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}

// As extracts an AppError from err. Errors that are not AppErrors become a
// 500 with the system message.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return &AppError{Err: err, Status: http.StatusInternalServerError, Message: SystemErrorMessage}
}
