package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupAdRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	ads := api.Group("/ads")

	ads.Use(middleware.Protected(cfg.JWT.Secret))

	ads.Get("/", h.Ad.List)
	ads.Post("/", h.Ad.Create)
	ads.Get("/:adId", h.Ad.Get)
	ads.Put("/:adId", h.Ad.Update)
	ads.Delete("/:adId", h.Ad.Delete)
}
