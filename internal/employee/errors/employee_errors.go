package employeeerrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound      = apperror.NotFound("Employee not found")
	ErrEmployeeCodeExists    = apperror.Conflict("Employee code already exists in this organization")
	ErrEmployeeHasDependents = apperror.Conflict("Employee is still referenced by other records")
	ErrDepartmentNotInOrg    = apperror.Validation("Department does not exist in this organization")
	ErrManagerNotInOrg       = apperror.Validation("Manager does not exist in this organization")
	ErrSelfManager           = apperror.Validation("An employee cannot be their own manager")
	ErrInvalidJoiningDate    = apperror.Validation("Invalid joining_date format, expected YYYY-MM-DD")
	ErrInvalidStatus         = apperror.InvalidField("status")
	ErrNegativeSalary        = apperror.Validation("Salary cannot be negative")
	ErrFirstNameRequired     = apperror.RequiredField("first_name")
)
