package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const maxDisplayConnections = 10

// Hub pushes alerts to the kitchen display screens over WebSocket. Displays
// connect read-only; a write failure drops the connection.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxDisplayConnections {
		h.logger.Warnf("max display connections reached, rejecting %s", conn.RemoteAddr())
		conn.Close()
		return
	}
	h.conns[conn] = true
	h.logger.Infof("display connected from %s (total: %d)", conn.RemoteAddr(), len(h.conns))
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		h.logger.Infof("display disconnected (remaining: %d)", len(h.conns))
	}
}

// Notify broadcasts the alert to every connected display.
func (h *Hub) Notify(_ context.Context, a Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Errorf("failed to push alert to display: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
	return nil
}
