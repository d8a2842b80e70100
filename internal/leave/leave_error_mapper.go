package leave

import (
	"errors"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return leaveerrors.ErrLeaveTypeExists
	}
	if apperror.IsForeignKeyViolation(err) {
		return leaveerrors.ErrLeaveTypeNotFound
	}

	return err
}
