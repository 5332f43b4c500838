package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/infrastructure/websocket"
	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config, wsManager *websocket.ConnectionManager) {
	// Health and root routes live outside the API version group
	SetupHealthRoutes(app, h.Health)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, cfg)
	SetupModuleRoutes(api, h, cfg)
	SetupIssueRoutes(api, h, cfg)
	SetupGenerationRoutes(api, h, cfg)
	SetupAiAppRoutes(api, h, cfg)
	SetupAdRoutes(api, h, cfg)
	SetupLogRoutes(api, h)

	// WebSocket routes need the app, not the api group
	SetupWebSocketRoutes(app, cfg, wsManager)
}
