package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lox/pokernight/internal/session"
)

// Time allowed to write a view to the peer
const writeWait = 10 * time.Second

// watcher wraps a spectator connection. All writes to the conn happen in its
// writePump goroutine, fed by the send channel, so publishes from racing
// requests never touch the conn concurrently.
type watcher struct {
	conn      *websocket.Conn
	send      chan session.View
	closeOnce sync.Once
}

func (w *watcher) close() {
	w.closeOnce.Do(func() { close(w.send) })
}

// queue enqueues a view without blocking. It reports false when the buffer
// is full or the watcher is already closed; the recover absorbs the send on
// a channel closed by a concurrent disconnect.
func (w *watcher) queue(view session.View) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case w.send <- view:
		return true
	default:
		return false
	}
}

func (w *watcher) writePump() {
	defer func() { _ = w.conn.Close() }()

	for view := range w.send {
		_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := w.conn.WriteJSON(view); err != nil {
			return
		}
	}
	_ = w.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub pushes public view updates to websocket spectators. Each client
// subscribes to a single session via the game_id query parameter.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	mu       sync.Mutex
	watchers map[string]map[*watcher]bool
}

// NewHub creates an empty watch hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("hub"),
		watchers: make(map[string]map[*watcher]bool),
	}
}

// HandleWatch upgrades the request and registers the client as a watcher
// of the requested session
func (h *Hub) HandleWatch(c *gin.Context) {
	sessionID := c.Query("game_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "game_id is required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	w := &watcher{conn: conn, send: make(chan session.View, 16)}

	h.mu.Lock()
	if h.watchers[sessionID] == nil {
		h.watchers[sessionID] = make(map[*watcher]bool)
	}
	h.watchers[sessionID][w] = true
	total := len(h.watchers[sessionID])
	h.mu.Unlock()

	h.logger.Info("watcher connected", "session", sessionID, "watchers", total)

	go w.writePump()

	// Reads only serve to detect the client going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(sessionID, w)
				return
			}
		}
	}()
}

func (h *Hub) remove(sessionID string, w *watcher) {
	h.mu.Lock()
	if conns, ok := h.watchers[sessionID]; ok && conns[w] {
		delete(conns, w)
		if len(conns) == 0 {
			delete(h.watchers, sessionID)
		}
		h.mu.Unlock()
		w.close()
		h.logger.Info("watcher disconnected", "session", sessionID)
		return
	}
	h.mu.Unlock()
}

// Publish queues the view for every watcher of the session. A watcher whose
// send buffer is full is dropped rather than blocking the caller.
func (h *Hub) Publish(sessionID string, view session.View) {
	h.mu.Lock()
	watchers := make([]*watcher, 0, len(h.watchers[sessionID]))
	for w := range h.watchers[sessionID] {
		watchers = append(watchers, w)
	}
	h.mu.Unlock()

	for _, w := range watchers {
		if !w.queue(view) {
			h.logger.Warn("watcher not keeping up, dropping", "session", sessionID)
			h.remove(sessionID, w)
		}
	}
}

// Close disconnects all watchers
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.watchers
	h.watchers = make(map[string]map[*watcher]bool)
	h.mu.Unlock()

	for _, conns := range all {
		for w := range conns {
			w.close()
		}
	}
}
