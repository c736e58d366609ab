package dto

import (
	"time"

	"github.com/spec-kit/support-message-service/internal/domain"
)

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=100"`
	Message  string `json:"message" validate:"required,min=10,max=5000"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// UpdateMessageStatusRequest payload.
type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW PENDING RESOLVED CLOSED"`
}

// MessageSummary is the customer-facing view. The body is omitted;
// it exists in the store only as ciphertext.
type MessageSummary struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Priority        domain.MessagePriority `json:"priority"`
	Status          domain.MessageStatus   `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	FirstResponseAt *time.Time             `json:"first_response_at,omitempty"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time             `json:"closed_at,omitempty"`
}

// AdminMessageView is the admin-facing view with the decrypted body.
type AdminMessageView struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	Title           string                 `json:"title"`
	Message         string                 `json:"message"`
	Priority        domain.MessagePriority `json:"priority"`
	Status          domain.MessageStatus   `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	FirstResponseAt *time.Time             `json:"first_response_at,omitempty"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time             `json:"closed_at,omitempty"`
}

// InboxRefreshResponse reports the inbox version after a refresh.
type InboxRefreshResponse struct {
	Version int64 `json:"version"`
}
