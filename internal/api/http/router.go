package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-message-service/internal/api/http/handlers"
	"github.com/spec-kit/support-message-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Messages       *handlers.MessagesHandler
	AdminMessages  *handlers.AdminMessagesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.ChangePassword)

	messages := app.Group("/messages", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	messages.Post("/", cfg.Messages.Create)
	messages.Get("/", cfg.Messages.ListOwn)

	admin := app.Group("/admin/messages", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/", cfg.AdminMessages.List)
	admin.Patch("/:id/status", cfg.AdminMessages.UpdateStatus)
	admin.Post("/refresh", cfg.AdminMessages.TriggerRefresh)
}
