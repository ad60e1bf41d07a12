// Package ws broadcasts completed simulations to websocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("feed closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Message is the frame sent to subscribers.
type Message struct {
	Type string         `json:"type"`
	Data simulation.Run `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans simulations out to every connected subscriber. Subscribers that
// fall behind by more than sendBuffer messages are disconnected.
// It implements simulation.Publisher and http.Handler.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	gauge   prometheus.Gauge
	logger  *slog.Logger
}

// NewHub creates a Hub. gauge tracks the subscriber count and may be nil.
func NewHub(gauge prometheus.Gauge, logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		gauge:   gauge,
		logger:  logger,
	}
}

// ServeHTTP upgrades the request and subscribes the connection to the feed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	h.logger.Debug("feed subscriber connected", "remote_addr", r.RemoteAddr)

	go h.writePump(c)
	go h.readPump(c)
}

// Publish sends run to every subscriber without blocking.
func (h *Hub) Publish(_ context.Context, run simulation.Run) error {
	msg, err := json.Marshal(Message{Type: "simulation", Data: run})
	if err != nil {
		return fmt.Errorf("encode feed message: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow feed subscriber", "remote_addr", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
	return nil
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.gauge != nil {
		h.gauge.Inc()
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked must be called with h.mu held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	if h.gauge != nil {
		h.gauge.Dec()
	}
}

// readPump discards inbound frames and keeps the read deadline fresh on pong.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("feed subscriber read error", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
