package events

// Envelope is the subset of fields every lifecycle event carries.
type Envelope struct {
	EventType      string `json:"event_type"`
	RequestID      string `json:"request_id,omitempty"`
	OrganizationID string `json:"organization_id"`
}
