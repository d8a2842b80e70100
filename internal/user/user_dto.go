package user

import "time"

type ProvisionAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN HR_MANAGER EMPLOYEE"`
}

type UpdateAccountStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AccountResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
