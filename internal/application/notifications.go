package application

import (
	"fmt"

	"shiftserve/internal/domain"
)

// Notification is the message a marketplace event produces for a user.
type Notification struct {
	RecipientID string
	Text        string
}

// NotificationsFor maps an event to the notifications it should trigger, one
// per recipient. Events nobody needs to hear about yield none.
func NotificationsFor(e domain.Event) []Notification {
	str := func(k string) string {
		v, _ := e.Payload[k].(string)
		return v
	}
	to := func(recipient, text string) []Notification {
		if recipient == "" {
			return nil
		}
		return []Notification{{RecipientID: recipient, Text: text}}
	}
	switch e.Type {
	case domain.EventApplicationCreated:
		name := str("worker_name")
		if name == "" {
			name = "A worker"
		}
		return to(str("restaurant_id"), fmt.Sprintf("%s applied to shift %s", name, e.ShiftID))
	case domain.EventApplicationAccepted:
		return to(str("worker_id"), fmt.Sprintf("You got shift %s", e.ShiftID))
	case domain.EventApplicationDeclined:
		return to(str("worker_id"), fmt.Sprintf("Your application for shift %s was declined", e.ShiftID))
	case domain.EventShiftCancelled:
		var out []Notification
		for _, id := range stringList(e.Payload["worker_ids"]) {
			out = append(out, to(id, fmt.Sprintf("Shift %s was cancelled", e.ShiftID))...)
		}
		return out
	case domain.EventShiftCompleted:
		return to(str("worker_id"), fmt.Sprintf("Shift %s is complete, leave a rating", e.ShiftID))
	case domain.EventChatMessage:
		return to(str("recipient_id"), fmt.Sprintf("New message on shift %s", e.ShiftID))
	}
	return nil
}

// stringList reads a list payload both as built in process and as decoded
// from JSON.
func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, x := range l {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
