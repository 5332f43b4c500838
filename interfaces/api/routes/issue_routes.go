package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupIssueRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	issues := api.Group("/issues")

	issues.Use(middleware.Protected(cfg.JWT.Secret))

	// Module snapshot and per-block state
	issues.Post("/:issueId/modules/initialize", h.Issue.InitializeSelections)
	issues.Get("/:issueId/modules", h.Issue.GetSelections)
	issues.Delete("/:issueId/modules", h.Issue.ClearSelections)
	issues.Post("/:issueId/modules/usage", h.Issue.RecordUsage)
	issues.Put("/:issueId/blocks/:blockId/override", h.Issue.SetOverride)

	// Ad slots locked into an issue
	issues.Get("/:issueId/ads", h.Ad.ListSlots)
	issues.Post("/:issueId/ads", h.Ad.AddSlot)
	issues.Put("/:issueId/ads/reorder", h.Ad.ReorderSlots)
	issues.Delete("/:issueId/ads/:slotId", h.Ad.RemoveSlot)
}
