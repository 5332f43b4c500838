package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	wsmanager "newsletter-backend/infrastructure/websocket"
	"newsletter-backend/pkg/logger"
	"newsletter-backend/pkg/utils"
)

// WebSocketHandler upgrades connections and feeds them to the connection
// manager so clients receive generation progress events.
type WebSocketHandler struct {
	manager *wsmanager.ConnectionManager
}

func NewWebSocketHandler(manager *wsmanager.ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
	}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	var userID uuid.UUID

	// User context is set by the optional auth middleware when a token was sent
	if userContext := c.Locals("user"); userContext != nil {
		if user, ok := userContext.(*utils.UserContext); ok {
			userID = user.ID
		}
	}

	if userID == uuid.Nil {
		userID = uuid.New()
		logger.WebSocket("anonymous_connected", "Anonymous client connected", map[string]interface{}{"user_id": userID.String()})
	} else {
		logger.WebSocket("authenticated_connected", "Authenticated client connected", map[string]interface{}{"user_id": userID.String()})
	}

	h.manager.RegisterClient(c, userID)

	defer func() {
		h.manager.UnregisterClient(c)
	}()

	// Clients only receive events; inbound messages are discarded. The read
	// loop exists to detect disconnects.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			logger.WebSocketError("read_message", "WebSocket read error", err, map[string]interface{}{"user_id": userID.String()})
			break
		}
	}
}
