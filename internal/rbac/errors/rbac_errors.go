package rbacerrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrRoleNotFound      = apperror.NotFound("Role not found")
	ErrEmployeeNotFound  = apperror.NotFound("Employee not found")
	ErrRoleNameExists    = apperror.Conflict("A role with this name already exists")
	ErrUnknownPermission = apperror.Validation("One or more permissions do not exist")
)
