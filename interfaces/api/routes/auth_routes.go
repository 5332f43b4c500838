package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/interfaces/api/middleware"
	"newsletter-backend/pkg/config"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	auth := api.Group("/auth")

	// Tighter rate limit on credential endpoints
	auth.Post("/register", middleware.AuthRateLimiter(&cfg.RateLimit), h.Auth.Register)
	auth.Post("/login", middleware.AuthRateLimiter(&cfg.RateLimit), h.Auth.Login)

	auth.Get("/me", middleware.Protected(cfg.JWT.Secret), h.Auth.Me)
}
