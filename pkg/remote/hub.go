package remote

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single write to a shell.
	writeWait = 10 * time.Second

	// sendBuffer is the per-client outbound queue; a shell that falls this
	// far behind is dropped.
	sendBuffer = 64
)

// Hub broadcasts patch batches to every connected shell. It implements
// Sink and http.Handler (the WebSocket endpoint).
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*hubClient]struct{}
	closed  bool
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub. A nil logger defaults to slog.Default().
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*hubClient]struct{}),
	}
}

// ServeHTTP upgrades the request and attaches the shell until its
// connection drops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("shell upgrade failed", "error", err)
		return
	}
	c := &hubClient{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(c)
}

// Send implements Sink: one JSON encode, fanned out to every shell. A
// shell with a full queue is dropped rather than blocking the engine.
func (h *Hub) Send(patches []Patch) {
	if len(patches) == 0 {
		return
	}
	data, err := json.Marshal(patches)
	if err != nil {
		h.logger.Error("patch encode failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow shell")
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of attached shells.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close detaches every shell and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// dropLocked removes a client; the caller holds h.mu.
func (h *Hub) dropLocked(c *hubClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// writePump drains the client queue onto the connection.
func (h *Hub) writePump(c *hubClient) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			h.dropLocked(c)
			h.mu.Unlock()
			return
		}
	}
}

// readPump discards inbound messages; it exists to detect the close.
func (h *Hub) readPump(c *hubClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	h.dropLocked(c)
	h.mu.Unlock()
	c.conn.Close()
}
