package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-message-service/internal/api/dto"
	"github.com/spec-kit/support-message-service/internal/auth"
	"github.com/spec-kit/support-message-service/internal/domain"
	"github.com/spec-kit/support-message-service/internal/service"
	apperrors "github.com/spec-kit/support-message-service/pkg/util"
)

// MessagesHandler manages customer support message endpoints.
type MessagesHandler struct {
	service *service.SupportMessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.SupportMessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Create POST /messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	msg, err := h.service.Create(c.UserContext(), principal.User, service.CreateMessageInput{
		Title:    req.Title,
		Body:     req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageSummary(msg)})
}

// ListOwn GET /messages.
func (h *MessagesHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit := c.QueryInt("page_size", 20)
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	msgs, err := h.service.ListOwn(c.UserContext(), principal.User, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.MessageSummary, 0, len(msgs))
	for i := range msgs {
		items = append(items, messageSummary(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func messageSummary(msg *domain.SupportMessage) dto.MessageSummary {
	return dto.MessageSummary{
		ID:              msg.ID,
		Title:           msg.Title,
		Priority:        msg.Priority,
		Status:          msg.Status,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
		FirstResponseAt: msg.FirstResponseAt,
		ResolvedAt:      msg.ResolvedAt,
		ClosedAt:        msg.ClosedAt,
	}
}
