package routes

import (
	"github.com/gofiber/fiber/v2"

	"newsletter-backend/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler) {
	if healthHandler != nil {
		app.Get("/health", healthHandler.Health)
		app.Get("/health/detailed", healthHandler.DetailedHealth)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Newsletter Backend API",
			"version": "1.0.0",
			"docs":    "/docs",
			"health":  "/health",
		})
	})
}
