package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupModuleRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWT.Secret)

	// Publication-scoped catalog reads
	api.Get("/publications/:publicationId/modules", protected, h.Module.ListActiveModules)
	api.Put("/publications/:publicationId/modules/reorder", protected, h.Module.ReorderModules)

	modules := api.Group("/modules")
	modules.Use(protected)

	modules.Post("/", h.Module.CreateModule)
	modules.Get("/:moduleId", h.Module.GetModule)
	modules.Put("/:moduleId", h.Module.UpdateModule)
	modules.Delete("/:moduleId", h.Module.DeleteModule)
	modules.Post("/:moduleId/blocks", h.Module.CreateBlock)

	blocks := api.Group("/blocks")
	blocks.Use(protected)

	blocks.Put("/:blockId", h.Module.UpdateBlock)
	blocks.Delete("/:blockId", h.Module.DeleteBlock)
}
