package events

import (
	"time"

	"github.com/spec-kit/support-message-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageCreated       EventType = "support_message_created"
	EventMessageStatusChanged EventType = "support_message_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services. Payloads carry
// only non-sensitive metadata; message bodies never appear in events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MessageID string      `json:"message_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageCreatedPayload payload.
type MessageCreatedPayload struct {
	Title    string                 `json:"title"`
	Priority domain.MessagePriority `json:"priority"`
}

// MessageStatusChangedPayload payload.
type MessageStatusChangedPayload struct {
	OldStatus domain.MessageStatus `json:"old_status"`
	NewStatus domain.MessageStatus `json:"new_status"`
}
