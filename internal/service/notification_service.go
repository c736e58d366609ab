package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-message-service/internal/cache"
	"github.com/spec-kit/support-message-service/internal/events"
)

// NotificationService reacts to domain events: it logs them and keeps
// the cached admin inbox version in sync so listings refresh after
// every mutation.
type NotificationService struct {
	dispatcher events.Dispatcher
	inbox      *cache.InboxCache
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, inbox *cache.InboxCache, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		inbox:      inbox,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageCreated, n.handleMessageCreated)
	n.dispatcher.Subscribe(events.EventMessageStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleMessageCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("SupportMessageCreated",
		zap.String("message_id", event.MessageID),
		zap.String("user_id", event.Actor.UserID))
	n.bumpInbox(ctx)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SupportMessageStatusChanged",
		zap.String("message_id", event.MessageID),
		zap.Any("payload", event.Payload))
	n.bumpInbox(ctx)
	return nil
}

func (n *NotificationService) bumpInbox(ctx context.Context) {
	if n.inbox == nil {
		return
	}
	if err := n.inbox.Bump(ctx); err != nil {
		n.logger.Warn("bump inbox version", zap.Error(err))
	}
}
