package usererrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.NotFound("Employee not found")
	ErrAccountNotFound  = apperror.NotFound("Employee has no account")
	ErrAccountExists    = apperror.Conflict("Employee already has an account")
	ErrEmailTaken       = apperror.Conflict("Email is already used by another account")
	ErrInvalidRole      = apperror.InvalidField("role")
	ErrPasswordTooShort = apperror.Validation("Password must be at least 8 characters")
)
