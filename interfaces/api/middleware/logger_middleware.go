package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"newsletter-backend/pkg/logger"
)

// LoggerMiddleware logs every request with method, path, status and duration
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		data := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		}

		if err != nil || status >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "request", "Request failed", err, data)
		} else {
			logger.API("request", "Request handled", data)
		}

		return err
	}
}
