package events

import "time"

const (
	LeaveLifecycleTopic      = "hr.leave.lifecycle.v1"
	LeaveRequestDecidedType  = "leave_request_decided"
	LeaveRequestCanceledType = "leave_request_cancelled"
)

// LeaveRequestDecidedEvent is emitted when a pending request leaves PENDING,
// either by an approver decision or by the requester cancelling it.
type LeaveRequestDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	OrganizationID string    `json:"organization_id"`
	Status         string    `json:"status"`
	ActorID        string    `json:"actor_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
