package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive     = "ACTIVE"
	StatusOnNotice   = "ON_NOTICE"
	StatusTerminated = "TERMINATED"
	StatusOnLeave    = "ON_LEAVE"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusOnNotice, StatusTerminated, StatusOnLeave:
		return true
	}
	return false
}

type Employee struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_employees_org_code"`
	EmployeeCode   string          `gorm:"size:50;not null;uniqueIndex:uq_employees_org_code"`
	FirstName      string          `gorm:"size:100;not null"`
	LastName       string          `gorm:"size:100"`
	Email          string          `gorm:"size:255"`
	Phone          string          `gorm:"size:50"`
	Designation    string          `gorm:"size:150"`
	Salary         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	JoiningDate    time.Time       `gorm:"type:date;not null"`
	Status         string          `gorm:"size:20;not null;default:ACTIVE;index"`
	DepartmentID   *uuid.UUID      `gorm:"type:uuid;index"`
	ManagerID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT"`
	Manager    *ManagerRef    `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT"`
	Account    *AccountRef    `gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type DepartmentRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	Name           string
}

func (DepartmentRef) TableName() string {
	return "departments"
}

type ManagerRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string
	LastName     string
}

func (ManagerRef) TableName() string {
	return "employees"
}

// AccountRef is the linked login account, if one was provisioned.
type AccountRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid"`
	Email      string
	Role       string
	IsActive   bool
}

func (AccountRef) TableName() string {
	return "users"
}
