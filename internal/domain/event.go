package domain

import "time"

type EventType string

const (
	EventShiftCreated        EventType = "shift.created"
	EventShiftPublished      EventType = "shift.published"
	EventShiftUpdated        EventType = "shift.updated"
	EventShiftCancelled      EventType = "shift.cancelled"
	EventShiftDeleted        EventType = "shift.deleted"
	EventApplicationCreated  EventType = "application.created"
	EventApplicationAccepted EventType = "application.accepted"
	EventApplicationDeclined EventType = "application.declined"
	EventShiftCompleted      EventType = "shift.completed"
	EventShiftRated          EventType = "shift.rated"
	EventChatMessage         EventType = "chat.message"
)

// Event describes a marketplace change. Payload is JSON-encodable.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	ShiftID    string         `json:"shift_id"`
	ActorID    string         `json:"actor_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
