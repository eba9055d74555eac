package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRoleChanged   EventType = "user_role_changed"
	EventUserStatusChanged EventType = "user_status_changed"
	EventJobCreated        EventType = "job_created"
	EventJobStatusChanged  EventType = "job_status_changed"
	EventJobDeleted        EventType = "job_deleted"
)

// Event represents a privileged mutation performed through the API.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor"`
	TargetID  string      `json:"target_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	Role string `json:"role"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	Status string `json:"status"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}
