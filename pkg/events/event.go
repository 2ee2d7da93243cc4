package events

import "time"

// Audit event codes emitted by the assistant.
const (
	EventChatHandled    = "CHAT_HANDLED"
	EventAccessDenied   = "ACCESS_DENIED"
	EventPolicyIngested = "POLICY_INGESTED"
)

// Event defines the contract for all audit events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ACCESS_DENIED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// NewAuditEvent builds a timestamped event for the audit stream.
func NewAuditEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
