package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"newsletter-backend/pkg/logger"
)

// Event is one generation progress message pushed to connected dashboards
type Event struct {
	Type      string                 `json:"type"`
	IssueID   string                 `json:"issue_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type client struct {
	conn   *websocket.Conn
	userID uuid.UUID
	mu     sync.Mutex // per-connection write lock
}

// ConnectionManager tracks connected dashboard clients and fans events out
// to all of them.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

// Manager is the process-wide connection manager used by the upgrade handler
var Manager = NewConnectionManager()

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[*websocket.Conn]*client),
	}
}

func (m *ConnectionManager) RegisterClient(conn *websocket.Conn, userID uuid.UUID) {
	m.mu.Lock()
	m.clients[conn] = &client{conn: conn, userID: userID}
	count := len(m.clients)
	m.mu.Unlock()

	logger.WebSocket("client_registered", "WebSocket client registered", map[string]interface{}{
		"user_id": userID.String(),
		"clients": count,
	})
}

func (m *ConnectionManager) UnregisterClient(conn *websocket.Conn) {
	m.mu.Lock()
	delete(m.clients, conn)
	count := len(m.clients)
	m.mu.Unlock()

	logger.WebSocket("client_unregistered", "WebSocket client unregistered", map[string]interface{}{
		"clients": count,
	})
}

// Broadcast sends the event to every connected client. Send failures only
// log; the connection's own read loop handles teardown.
func (m *ConnectionManager) Broadcast(event Event) {
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		logger.WebSocketError("broadcast_encode", "Failed to encode event", err, nil)
		return
	}

	m.mu.RLock()
	clients := make([]*client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, payload)
		c.mu.Unlock()
		if err != nil {
			logger.WebSocketError("broadcast_write", "Failed to write event to client", err, map[string]interface{}{
				"user_id": c.userID.String(),
			})
		}
	}
}

// PublishGenerationEvent implements services.GenerationEventPublisher
func (m *ConnectionManager) PublishGenerationEvent(eventType string, issueID uuid.UUID, data map[string]interface{}) {
	m.Broadcast(Event{
		Type:    eventType,
		IssueID: issueID.String(),
		Data:    data,
	})
}
