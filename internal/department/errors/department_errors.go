package departmenterrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound     = apperror.NotFound("Department not found")
	ErrDepartmentNameExists   = apperror.Conflict("A department with this name already exists")
	ErrDepartmentHasEmployees = apperror.Conflict("Department still has employees and cannot be deleted")
	ErrNameRequired           = apperror.RequiredField("name")
)
