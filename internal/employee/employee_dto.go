package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employee_code" binding:"omitempty,max=50"`
	FirstName    string          `json:"first_name" binding:"required,max=100"`
	LastName     string          `json:"last_name" binding:"omitempty,max=100"`
	Email        string          `json:"email" binding:"omitempty,email"`
	Phone        string          `json:"phone" binding:"omitempty,max=50"`
	Designation  string          `json:"designation" binding:"omitempty,max=150"`
	Salary       decimal.Decimal `json:"salary"`
	JoiningDate  string          `json:"joining_date" binding:"required"`
	Status       string          `json:"status" binding:"omitempty,oneof=ACTIVE ON_NOTICE TERMINATED ON_LEAVE"`
	DepartmentID string          `json:"department_id" binding:"omitempty,uuid"`
	ManagerID    string          `json:"manager_id" binding:"omitempty,uuid"`
}

// EmployeePatch carries only mutable fields. Nil leaves a field unchanged; an
// empty string on department_id or manager_id clears the reference.
type EmployeePatch struct {
	FirstName    *string          `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string          `json:"last_name" binding:"omitempty,max=100"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	Designation  *string          `json:"designation" binding:"omitempty,max=150"`
	Salary       *decimal.Decimal `json:"salary"`
	JoiningDate  *string          `json:"joining_date"`
	Status       *string          `json:"status" binding:"omitempty,oneof=ACTIVE ON_NOTICE TERMINATED ON_LEAVE"`
	DepartmentID *string          `json:"department_id"`
	ManagerID    *string          `json:"manager_id"`
}

type DepartmentSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ManagerSummary struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

type AccountSummary struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	EmployeeCode   string             `json:"employee_code"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	FullName       string             `json:"full_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Designation    string             `json:"designation"`
	Salary         decimal.Decimal    `json:"salary"`
	JoiningDate    string             `json:"joining_date"`
	Status         string             `json:"status"`
	DepartmentID   string             `json:"department_id,omitempty"`
	Department     *DepartmentSummary `json:"department,omitempty"`
	ManagerID      string             `json:"manager_id,omitempty"`
	Manager        *ManagerSummary    `json:"manager,omitempty"`
	Account        *AccountSummary    `json:"account,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// EmployeeOption is the minimal projection used by selection widgets.
type EmployeeOption struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}
