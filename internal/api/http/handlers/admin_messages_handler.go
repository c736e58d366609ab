package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-message-service/internal/api/dto"
	"github.com/spec-kit/support-message-service/internal/auth"
	"github.com/spec-kit/support-message-service/internal/cache"
	"github.com/spec-kit/support-message-service/internal/domain"
	"github.com/spec-kit/support-message-service/internal/service"
	apperrors "github.com/spec-kit/support-message-service/pkg/util"
)

// AdminMessagesHandler manages the administrative support inbox.
type AdminMessagesHandler struct {
	service *service.SupportMessageService
	inbox   *cache.InboxCache
}

// NewAdminMessagesHandler constructs handler.
func NewAdminMessagesHandler(messageService *service.SupportMessageService, inbox *cache.InboxCache) *AdminMessagesHandler {
	return &AdminMessagesHandler{service: messageService, inbox: inbox}
}

// List GET /admin/messages.
func (h *AdminMessagesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	views, err := h.service.ListForAdmin(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.AdminMessageView, 0, len(views))
	for i := range views {
		items = append(items, adminMessageView(&views[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PATCH /admin/messages/:id/status.
func (h *AdminMessagesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateMessageStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	msg, err := h.service.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), domain.MessageStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageSummary(msg)})
}

// TriggerRefresh POST /admin/messages/refresh.
func (h *AdminMessagesHandler) TriggerRefresh(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.TriggerListRefresh(c.UserContext(), principal.User); err != nil {
		return err
	}
	version, err := h.inbox.Version(c.UserContext())
	if err != nil {
		version = 0
	}
	return c.JSON(fiber.Map{"data": dto.InboxRefreshResponse{Version: version}})
}

func adminMessageView(view *service.DecryptedMessage) dto.AdminMessageView {
	return dto.AdminMessageView{
		ID:              view.ID,
		UserID:          view.UserID,
		Title:           view.Title,
		Message:         view.Body,
		Priority:        view.Priority,
		Status:          view.Status,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
		FirstResponseAt: view.FirstResponseAt,
		ResolvedAt:      view.ResolvedAt,
		ClosedAt:        view.ClosedAt,
	}
}
