package organizationerrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrOrganizationNotFound = apperror.NotFound("Organization not found")
	ErrNameRequired         = apperror.RequiredField("name")
)
