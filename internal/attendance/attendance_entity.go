package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"

	SourceManual = "MANUAL"
)

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	OrganizationID uuid.UUID    `gorm:"column:organization_id;type:uuid;not null;index:idx_attendances_org_date"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_employee_date;index:idx_attendances_org_date"`
	ClockIn        time.Time    `gorm:"column:clock_in;not null"`
	ClockOut       *time.Time   `gorm:"column:clock_out"`
	Latitude       *float64     `gorm:"column:latitude"`
	Longitude      *float64     `gorm:"column:longitude"`
	Status         string       `gorm:"column:status;type:varchar(20);not null"`
	Source         string       `gorm:"column:source;type:varchar(30);not null"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	EmployeeCode   string
	FirstName      string
	LastName       string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
