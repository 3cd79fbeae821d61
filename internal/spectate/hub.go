// Package spectate streams game snapshots to websocket spectators.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Config holds the spectator server settings.
type Config struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string
	// WriteTimeout bounds every websocket write.
	WriteTimeout time.Duration
	// PingInterval is how often idle connections are pinged.
	PingInterval time.Duration
	// SendBuffer is the number of frames queued per spectator. Frames for a
	// spectator whose queue is full are dropped.
	SendBuffer int
}

// DefaultConfig returns the default spectator settings.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		WriteTimeout: 10 * time.Second,
		PingInterval: 25 * time.Second,
		SendBuffer:   32,
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans out published snapshots to every connected spectator.
type Hub struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	dropped uint64
}

// NewHub creates a hub. A nil logger uses the default logger.
func NewHub(cfg Config, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultConfig().SendBuffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultConfig().PingInterval
	}

	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Spectating is read-only, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish sends v as JSON to every spectator. It never blocks.
func (h *Hub) Publish(v any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("cannot encode snapshot", "err", err)
		return
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames were skipped for slow spectators.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Handler returns the HTTP routes: /ws for spectators and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", h.serveHealth)
	return mux
}

func (h *Hub) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"spectators": h.Count(),
	})
}

// ServeWS upgrades the request and streams snapshots until the spectator leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.cfg.SendBuffer)}
	h.add(c)
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "spectators", h.Count())

	done := make(chan struct{})
	go h.writeLoop(c, done)
	h.readLoop(c)

	close(done)
	h.remove(c)
	conn.Close()
	h.logger.Info("spectator left", "remote", r.RemoteAddr, "spectators", h.Count())
}

// readLoop discards client messages; it returns when the connection closes.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(1 << 10)
	deadline := 2 * h.cfg.PingInterval
	c.conn.SetReadDeadline(time.Now().Add(deadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.conn.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// ListenAndServe serves the spectator routes on cfg.Addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              h.cfg.Addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "addr", h.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
