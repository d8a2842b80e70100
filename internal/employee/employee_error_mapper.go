package employee

import (
	"errors"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return employeeerrors.ErrEmployeeCodeExists
	}
	if apperror.IsForeignKeyViolation(err) {
		return employeeerrors.ErrEmployeeHasDependents
	}

	return err
}
