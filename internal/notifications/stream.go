// Package notifications pushes domain events to connected dashboard clients
// over WebSocket.
package notifications

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"aura/marketplace/marketplace-backend/internal/eventing"
)

// Stream broadcasts every domain event to all connected clients.
type Stream struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewStream creates a stream with no connected clients.
func NewStream(logger *zap.Logger) *Stream {
	return &Stream{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The demo serves a local dashboard; no origin policy.
				return true
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Attach subscribes the stream to every event kind on the bus.
func (s *Stream) Attach(bus *eventing.Bus) {
	for _, kind := range eventing.Kinds() {
		bus.Subscribe(kind, s.broadcast)
	}
}

// Handle upgrades the request and keeps the connection registered until the
// client goes away.
func (s *Stream) Handle(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.logger.Info("event stream client connected",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("clients", s.ClientCount()))

	go s.readLoop(conn)
}

// ClientCount returns the number of connected clients.
func (s *Stream) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Stream) broadcast(event eventing.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(event); err != nil {
			s.logger.Warn("event stream write failed, dropping client", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// readLoop drains incoming frames so that close messages are noticed.
func (s *Stream) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			return
		}
	}
}
