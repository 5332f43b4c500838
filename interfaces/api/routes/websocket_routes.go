package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wsmanager "newsletter-backend/infrastructure/websocket"
	"newsletter-backend/interfaces/api/middleware"
	websocketHandler "newsletter-backend/interfaces/api/websocket"
	"newsletter-backend/pkg/config"
)

func SetupWebSocketRoutes(app *fiber.App, cfg *config.Config, manager *wsmanager.ConnectionManager) {
	wsHandler := websocketHandler.NewWebSocketHandler(manager)

	// Optional authentication with query-token support, since browsers can't
	// set the Authorization header on WebSocket connections
	app.Use("/ws", middleware.OptionalWithQueryToken(cfg.JWT.Secret), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
