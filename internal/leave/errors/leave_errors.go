package leaveerrors

import (
	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveNotFound       = apperror.NotFound("Leave request not found")
	ErrLeaveTypeNotFound   = apperror.NotFound("Leave type not found")
	ErrEmployeeNotFound    = apperror.NotFound("Employee not found")
	ErrLeaveTypeExists     = apperror.Conflict("Leave type already exists in this organization")
	ErrLeaveNotPending     = apperror.Conflict("Leave request has already been decided")
	ErrInvalidDateFormat   = apperror.Validation("Invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange    = apperror.Validation("end_date must not be before start_date")
	ErrInvalidStatus       = apperror.InvalidField("status")
	ErrInvalidStatusFilter = apperror.Validation("Unknown leave status filter")
	ErrNameRequired        = apperror.RequiredField("name")
	ErrNegativeDaysAllowed = apperror.Validation("days_allowed cannot be negative")
	ErrApproverRequired    = apperror.RequiredField("approver_id")
)
