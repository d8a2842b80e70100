package leave

import "time"

const dateLayout = "2006-01-02"

type CreateLeaveTypeRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	DaysAllowed  int    `json:"days_allowed" binding:"gte=0"`
	CarryForward bool   `json:"carry_forward"`
	IsPaid       bool   `json:"is_paid"`
}

type LeaveTypeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DaysAllowed  int    `json:"days_allowed"`
	CarryForward bool   `json:"carry_forward"`
	IsPaid       bool   `json:"is_paid"`
}

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type LeaveResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeCode  string     `json:"employee_code,omitempty"`
	EmployeeName  string     `json:"employee_name,omitempty"`
	LeaveTypeID   string     `json:"leave_type_id"`
	LeaveTypeName string     `json:"leave_type_name,omitempty"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	TotalDays     int        `json:"total_days"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ApproverID    *string    `json:"approver_id,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
