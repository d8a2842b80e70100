package user

import (
	"errors"

	"go-hrms/internal/shared/apperror"
	usererrors "go-hrms/internal/user/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrAccountNotFound
	}
	if apperror.IsUniqueViolation(err) {
		if apperror.ConstraintName(err) == "idx_users_email" {
			return usererrors.ErrEmailTaken
		}
		return usererrors.ErrAccountExists
	}
	if apperror.IsForeignKeyViolation(err) {
		return usererrors.ErrEmployeeNotFound
	}

	return err
}
