package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-message-service/internal/cache"
	"github.com/spec-kit/support-message-service/internal/crypto"
	"github.com/spec-kit/support-message-service/internal/domain"
	"github.com/spec-kit/support-message-service/internal/events"
	"github.com/spec-kit/support-message-service/internal/repository"
	apperrors "github.com/spec-kit/support-message-service/pkg/util"
)

const (
	titleMinLen = 3
	titleMaxLen = 100
	bodyMinLen  = 10
	bodyMaxLen  = 5000

	// DecryptionFailedPlaceholder replaces the body of a record whose
	// ciphertext cannot be verified. The rest of the listing still
	// returns.
	DecryptionFailedPlaceholder = "[message could not be decrypted]"
)

// SupportMessageService is the only component that touches the message
// cipher. It enforces authorization and lifecycle rules around support
// messages; plaintext bodies exist only transiently inside its calls.
type SupportMessageService struct {
	messages   repository.SupportMessageRepository
	cipher     *crypto.MessageCipher
	retention  domain.RetentionPolicy
	inbox      *cache.InboxCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// MessageDependencies bundles collaborators for the service.
type MessageDependencies struct {
	MessageRepo repository.SupportMessageRepository
	Cipher      *crypto.MessageCipher
	Retention   domain.RetentionPolicy
	InboxCache  *cache.InboxCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// CreateMessageInput describes message creation payload.
type CreateMessageInput struct {
	Title    string
	Body     string
	Priority string
}

// DecryptedMessage is the admin-facing view with the body restored to
// plaintext. It is built server-side per request and never persisted.
type DecryptedMessage struct {
	ID              string
	UserID          string
	Title           string
	Body            string
	Priority        domain.MessagePriority
	Status          domain.MessageStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	FirstResponseAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
}

// NewSupportMessageService constructs the service.
func NewSupportMessageService(deps MessageDependencies) *SupportMessageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportMessageService{
		messages:   deps.MessageRepo,
		cipher:     deps.Cipher,
		retention:  deps.Retention,
		inbox:      deps.InboxCache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates input, encrypts the body and persists a new message
// with status forced to NEW regardless of any client-supplied value.
func (s *SupportMessageService) Create(ctx context.Context, actor *domain.User, input CreateMessageInput) (*domain.SupportMessage, error) {
	if actor == nil || actor.ID == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	title := strings.TrimSpace(input.Title)
	body := input.Body
	fieldErrors := map[string]any{}
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		fieldErrors["title"] = "must be between 3 and 100 characters"
	}
	if n := utf8.RuneCountInString(body); n < bodyMinLen || n > bodyMaxLen {
		fieldErrors["message"] = "must be between 10 and 5000 characters"
	}
	priority, err := domain.ParseMessagePriority(input.Priority)
	if err != nil {
		fieldErrors["priority"] = "must be one of LOW, MEDIUM, HIGH, URGENT"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("invalid support message", fieldErrors)
	}

	encrypted, err := s.cipher.Encrypt(body)
	if err != nil {
		s.logger.Error("encrypt message body", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	msg := &domain.SupportMessage{
		UserID:   actor.ID,
		Title:    title,
		Body:     encrypted,
		Priority: priority,
		Status:   domain.MessageStatusNew,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("persist support message", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMessageCreated,
		MessageID: msg.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.MessageCreatedPayload{
			Title:    msg.Title,
			Priority: msg.Priority,
		},
	})
	return msg, nil
}

// UpdateStatus transitions a message to a new status. Only admins may
// call it; a denied call leaves the record untouched. The lifecycle
// timestamps are each set at most once: firstResponseAt on the first
// transition into PENDING, resolvedAt on the first RESOLVED, closedAt
// on the first CLOSED.
func (s *SupportMessageService) UpdateStatus(ctx context.Context, actor *domain.User, messageID string, newStatus domain.MessageStatus) (*domain.SupportMessage, error) {
	if err := s.requireAdmin(actor, "update message status"); err != nil {
		return nil, err
	}
	if _, err := domain.ParseMessageStatus(string(newStatus)); err != nil {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"status": "must be one of NEW, PENDING, RESOLVED, CLOSED",
		})
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	oldStatus := msg.Status
	msg.Status = newStatus
	msg.UpdatedAt = now
	switch newStatus {
	case domain.MessageStatusPending:
		if msg.FirstResponseAt == nil {
			msg.FirstResponseAt = &now
		}
	case domain.MessageStatusResolved:
		if msg.ResolvedAt == nil {
			msg.ResolvedAt = &now
		}
	case domain.MessageStatusClosed:
		if msg.ClosedAt == nil {
			msg.ClosedAt = &now
		}
	}

	if err := s.messages.Update(ctx, msg); err != nil {
		s.logger.Error("update support message status",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMessageStatusChanged,
		MessageID: msg.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.MessageStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return msg, nil
}

// ListForAdmin returns decrypted messages created within the retention
// window, newest first. A record whose ciphertext fails verification
// gets a placeholder body; the rest of the listing still returns.
func (s *SupportMessageService) ListForAdmin(ctx context.Context, actor *domain.User) ([]DecryptedMessage, error) {
	if err := s.requireAdmin(actor, "list support messages"); err != nil {
		return nil, err
	}

	cutoff := s.retention.Cutoff(s.now())
	records, err := s.messages.ListCreatedSince(ctx, cutoff)
	if err != nil {
		s.logger.Error("list support messages", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	views := make([]DecryptedMessage, 0, len(records))
	for i := range records {
		views = append(views, s.decryptedView(&records[i]))
	}
	return views, nil
}

// ListOwn returns the caller's own messages as summaries. Bodies are
// not decrypted on this path; decryption happens only at the admin
// boundary.
func (s *SupportMessageService) ListOwn(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.SupportMessage, error) {
	if actor == nil || actor.ID == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	records, err := s.messages.ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		s.logger.Error("list own support messages", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return records, nil
}

// TriggerListRefresh bumps the admin inbox version so external caches
// drop their copy of the rendered listing. No cryptographic behavior.
func (s *SupportMessageService) TriggerListRefresh(ctx context.Context, actor *domain.User) error {
	if err := s.requireAdmin(actor, "trigger inbox refresh"); err != nil {
		return err
	}
	if err := s.inbox.Bump(ctx); err != nil {
		s.logger.Warn("bump inbox version", zap.Error(err))
	}
	return nil
}

func (s *SupportMessageService) requireAdmin(actor *domain.User, action string) error {
	if actor == nil || actor.ID == "" {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsAdmin() {
		s.logger.Warn("denied admin operation",
			zap.String("action", action),
			zap.String("user_id", actor.ID),
			zap.Time("at", s.now()))
		return apperrors.NewForbidden("administrative role required")
	}
	return nil
}

func (s *SupportMessageService) decryptedView(msg *domain.SupportMessage) DecryptedMessage {
	body, err := s.cipher.Decrypt(msg.Body)
	if err != nil {
		// log the record id only; neither ciphertext nor any attempted
		// plaintext may reach the logs
		if errors.Is(err, crypto.ErrDecrypt) {
			s.logger.Error("decrypt support message", zap.String("message_id", msg.ID))
		} else {
			s.logger.Error("decrypt support message", zap.String("message_id", msg.ID), zap.Error(err))
		}
		body = DecryptionFailedPlaceholder
	}
	return DecryptedMessage{
		ID:              msg.ID,
		UserID:          msg.UserID,
		Title:           msg.Title,
		Body:            body,
		Priority:        msg.Priority,
		Status:          msg.Status,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
		FirstResponseAt: msg.FirstResponseAt,
		ResolvedAt:      msg.ResolvedAt,
		ClosedAt:        msg.ClosedAt,
	}
}

func (s *SupportMessageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
