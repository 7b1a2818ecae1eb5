// Package stream broadcasts live overlay updates to websocket subscribers.
// The hub is write-only from the subscriber's point of view: clients receive
// overlay events and send nothing meaningful back.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/metrics"
	"github.com/Christbey/picksports-sub004/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Overlay data is not sensitive; subscribers are read-only
		return true
	},
}

// OverlayEvent is the wire format pushed to subscribers. A nil Overlay means
// the game left live status and clients should drop their copy.
type OverlayEvent struct {
	GameID  uuid.UUID           `json:"game_id"`
	Overlay *models.LiveOverlay `json:"overlay"`
	Cleared bool                `json:"cleared"`
	SentAt  time.Time           `json:"sent_at"`
}

// Hub fans overlay events out to connected websocket clients. Slow clients
// are dropped rather than allowed to block the broadcast loop.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	logger     *logrus.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// NewHub creates an overlay broadcast hub
func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		logger:     logger,
	}
}

// Run owns the client set until ctx is cancelled. All connections are closed
// on shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			metrics.StreamSubscribers.Set(0)
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.StreamSubscribers.Set(float64(len(h.clients)))
			h.logger.WithField("subscribers", len(h.clients)).Debug("Stream subscriber connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			metrics.StreamSubscribers.Set(float64(len(h.clients)))
			h.logger.WithField("subscribers", len(h.clients)).Debug("Stream subscriber disconnected")

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			metrics.StreamSubscribers.Set(float64(len(h.clients)))
		}
	}
}

// Publish satisfies the live poller's publisher interface. A nil overlay is
// broadcast as a clear event.
func (h *Hub) Publish(gameID uuid.UUID, overlay *models.LiveOverlay) {
	event := OverlayEvent{
		GameID:  gameID,
		Overlay: overlay,
		Cleared: overlay == nil,
		SentAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal overlay event")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// Broadcast queue full; the next poll supersedes this event anyway
		h.logger.Warn("Stream broadcast queue full, dropping overlay event")
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade stream connection")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize), hub: h}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains inbound frames so pings are answered and closes propagate
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.WithError(err).Debug("Stream read error")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
