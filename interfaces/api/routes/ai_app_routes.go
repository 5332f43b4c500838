package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupAiAppRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	apps := api.Group("/ai-apps")

	apps.Use(middleware.Protected(cfg.JWT.Secret))

	apps.Get("/", h.AiApp.List)
	apps.Post("/", h.AiApp.Create)
	apps.Get("/:appId", h.AiApp.Get)
	apps.Put("/:appId", h.AiApp.Update)
	apps.Delete("/:appId", h.AiApp.Delete)
	apps.Get("/:appId/similar", h.AiApp.Similar)
}
