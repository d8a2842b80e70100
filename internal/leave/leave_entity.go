package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type LeaveType struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_types_org_name"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_types_org_name"`
	DaysAllowed    int       `gorm:"not null"`
	CarryForward   bool      `gorm:"not null"`
	IsPaid         bool      `gorm:"not null"`
	CreatedAt      time.Time
}

func (LeaveType) TableName() string { return "leave_types" }

// LeaveRequest has no organization column; it belongs to a tenant through its employee.
type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     time.Time  `gorm:"type:date;not null"`
	TotalDays   int        `gorm:"not null"`
	Reason      string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`
	ApproverID  *uuid.UUID `gorm:"type:uuid"`
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	LeaveType *LeaveType     `gorm:"foreignKey:LeaveTypeID;constraint:OnDelete:RESTRICT"`
	Employee  *LeaveEmployee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

type LeaveEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	EmployeeCode   string
	FirstName      string
	LastName       string
}

func (LeaveEmployee) TableName() string { return "employees" }

func (e LeaveEmployee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
