package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupGenerationRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWT.Secret)

	api.Post("/issues/:issueId/generate", protected, h.Generation.GenerateBlocks)
	api.Post("/issues/:issueId/blocks/:blockId/regenerate", protected, h.Generation.RegenerateBlock)
	api.Post("/publications/:publicationId/test-prompt", protected, h.Generation.TestPrompt)
}
