package attendanceerrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound  = apperror.NotFound("Employee not found")
	ErrAlreadyClockedIn  = apperror.Conflict("Already clocked in for today")
	ErrNotClockedIn      = apperror.NotFound("Clock in not found for today")
	ErrAlreadyClockedOut = apperror.Conflict("Already clocked out for today")
)
