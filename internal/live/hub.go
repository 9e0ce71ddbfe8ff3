// Package live streams new readings to websocket clients.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/gorilla/websocket"
)

const (
	readBufferSize  = 1024
	writeBufferSize = 1024
	channelBuffer   = 16
	broadcastBuffer = 64
	writeDeadline   = 5 * time.Second
	readDeadline    = 60 * time.Second
	pingInterval    = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin browsers and non-browser clients (no Origin header).
		origin := r.Header.Get("Origin")
		return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
	},
	ReadBufferSize:  readBufferSize,
	WriteBufferSize: writeBufferSize,
}

// Hub fans readings out to every connected websocket client.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}

	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn, channelBuffer),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub's main loop. It closes every client when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			h.logger.Info("[Live] Hub stopped")
			return nil

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("[Live] Client connected", "clients", count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("[Live] Client disconnected", "clients", count)

		case message := <-h.broadcast:
			h.mu.RLock()
			var failed []*websocket.Conn
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Debug("[Live] Write failed", "error", err)
					failed = append(failed, conn)
				}
			}
			h.mu.RUnlock()

			h.mu.Lock()
			for _, conn := range failed {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues r for every client. It never blocks: when the broadcast
// queue is full the reading is dropped.
func (h *Hub) Publish(r v1.Reading) {
	message, err := json.Marshal(r)
	if err != nil {
		h.logger.Warn("[Live] Failed to encode reading", "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Debug("[Live] Broadcast queue full, dropping reading", "timestamp", r.Timestamp)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away or the hub stops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "live feed stopped", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("[Live] Websocket upgrade failed", "error", err)
		return
	}

	// register is unbuffered: a send only completes while Run is receiving.
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// WriteControl may run concurrently with the hub's WriteMessage.
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("[Live] Websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}
