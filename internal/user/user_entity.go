package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "ADMIN"
	RoleHRManager = "HR_MANAGER"
	RoleEmployee  = "EMPLOYEE"
)

// User is the login account linked one-to-one with an employee.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash   string    `gorm:"type:text;not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:EMPLOYEE"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Employee *UserEmployee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT"`
}

func (User) TableName() string {
	return "users"
}

// UserEmployee is the minimal employee projection joined onto an account.
type UserEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	EmployeeCode   string
	FirstName      string
	LastName       string
}

func (UserEmployee) TableName() string {
	return "employees"
}
