package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_departments_org_name"`
	Name           string        `gorm:"size:150;not null;uniqueIndex:uq_departments_org_name"`
	Description    string        `gorm:"type:text"`
	CreatedAt      time.Time     `gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime"`
	Employees      []EmployeeRef `gorm:"foreignKey:DepartmentID"`
}

func (Department) TableName() string {
	return "departments"
}

// EmployeeRef is the read-only employee projection listed under a department.
type EmployeeRef struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid"`
	EmployeeCode   string
	FirstName      string
	LastName       string
	Designation    string
	Status         string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
