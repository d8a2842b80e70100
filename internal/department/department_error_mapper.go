package department

import (
	"errors"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return departmenterrors.ErrDepartmentNameExists
	}
	if apperror.IsForeignKeyViolation(err) {
		return departmenterrors.ErrDepartmentHasEmployees
	}

	return err
}
