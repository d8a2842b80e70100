package department

import "time"

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
}

// DepartmentPatch lists the mutable fields of a department; nil means unchanged.
type DepartmentPatch struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
}

type DepartmentEmployee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Designation  string `json:"designation"`
	Status       string `json:"status"`
}

type DepartmentResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	EmployeeCount  int                  `json:"employee_count"`
	Employees      []DepartmentEmployee `json:"employees"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
