package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType    = "employee_created"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	OrganizationID string    `json:"organization_id"`
	EmployeeCode   string    `json:"employee_code"`
	DepartmentID   string    `json:"department_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
