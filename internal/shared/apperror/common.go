package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// NotFound, Validation and Conflict are the three failure kinds raised by domain services.
// Conflicts are reported as 400 like any other rejected mutation.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

func RequiredField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is invalid", field))
}
