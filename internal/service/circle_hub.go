package service

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CircleConn wraps a websocket connection with a write lock, since gorilla
// connections allow only one concurrent writer.
type CircleConn struct {
	UserID string
	conn   *websocket.Conn
	mu     sync.Mutex
}

// NewCircleConn wraps an upgraded connection.
func NewCircleConn(userID string, conn *websocket.Conn) *CircleConn {
	return &CircleConn{UserID: userID, conn: conn}
}

// WriteJSON sends a message on the connection under the write lock.
func (c *CircleConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close closes the underlying connection.
func (c *CircleConn) Close() error {
	return c.conn.Close()
}

// CircleHub tracks live websocket connections per circle room and fans
// messages out to them.
type CircleHub struct {
	rooms  map[string]map[*CircleConn]struct{} // circleID -> connections
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewCircleHub creates the room registry.
func NewCircleHub(logger *zap.Logger) *CircleHub {
	return &CircleHub{
		rooms:  make(map[string]map[*CircleConn]struct{}),
		logger: logger,
	}
}

// Join registers a connection in a circle room.
func (h *CircleHub) Join(circleID string, conn *CircleConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[circleID]
	if !ok {
		room = make(map[*CircleConn]struct{})
		h.rooms[circleID] = room
	}
	room[conn] = struct{}{}

	h.logger.Info("circle connection joined",
		zap.String("circleId", circleID),
		zap.String("userId", conn.UserID),
		zap.Int("roomSize", len(room)))
}

// Leave removes a connection from a room and closes it.
func (h *CircleHub) Leave(circleID string, conn *CircleConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[circleID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, circleID)
		}
	}
	conn.Close()

	h.logger.Info("circle connection left",
		zap.String("circleId", circleID),
		zap.String("userId", conn.UserID))
}

// Broadcast sends a message to every live connection in the room. Failed
// connections are removed asynchronously.
func (h *CircleHub) Broadcast(circleID string, message interface{}) {
	h.mu.RLock()
	conns := make([]*CircleConn, 0, len(h.rooms[circleID]))
	for conn := range h.rooms[circleID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.logger.Warn("circle broadcast failed, dropping connection",
				zap.String("circleId", circleID),
				zap.String("userId", conn.UserID),
				zap.Error(err))
			go h.Leave(circleID, conn)
		}
	}
}

// OnlineCount returns the number of live connections in a room.
func (h *CircleHub) OnlineCount(circleID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[circleID])
}
