package domain

import (
	"fmt"
	"time"
)

// MessageStatus enumerates lifecycle states for support messages.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "NEW"
	MessageStatusPending  MessageStatus = "PENDING"
	MessageStatusResolved MessageStatus = "RESOLVED"
	MessageStatusClosed   MessageStatus = "CLOSED"
)

// MessagePriority enumerates submitter-declared urgency.
type MessagePriority string

const (
	MessagePriorityLow    MessagePriority = "LOW"
	MessagePriorityMedium MessagePriority = "MEDIUM"
	MessagePriorityHigh   MessagePriority = "HIGH"
	MessagePriorityUrgent MessagePriority = "URGENT"
)

// ParseMessageStatus validates a raw status string. Unknown values are
// rejected rather than defaulted.
func ParseMessageStatus(raw string) (MessageStatus, error) {
	switch MessageStatus(raw) {
	case MessageStatusNew, MessageStatusPending, MessageStatusResolved, MessageStatusClosed:
		return MessageStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown message status %q", raw)
	}
}

// ParseMessagePriority validates a raw priority string. An empty value
// defaults to LOW; anything else outside the set is rejected.
func ParseMessagePriority(raw string) (MessagePriority, error) {
	if raw == "" {
		return MessagePriorityLow, nil
	}
	switch MessagePriority(raw) {
	case MessagePriorityLow, MessagePriorityMedium, MessagePriorityHigh, MessagePriorityUrgent:
		return MessagePriority(raw), nil
	default:
		return "", fmt.Errorf("unknown message priority %q", raw)
	}
}

// SupportMessage is the aggregate for customer support requests.
// Body holds the encrypted serialized form of the message text; the
// plaintext never reaches the store.
type SupportMessage struct {
	ID              string
	UserID          string
	Title           string
	Body            string
	Priority        MessagePriority
	Status          MessageStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	FirstResponseAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
}
