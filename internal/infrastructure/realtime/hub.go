package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var _ application.EventPublisher = (*Hub)(nil)

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// Hub fans shift events out to the websocket connections subscribed to
// that shift.
type Hub struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	Buffer       int

	upgrader websocket.Upgrader

	mu   sync.RWMutex
	subs map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		WriteTimeout: infraconfig.DefaultWSWriteTimeout,
		PingInterval: infraconfig.DefaultWSPingInterval,
		Buffer:       infraconfig.DefaultChatBuffer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[string]map[*client]struct{}),
	}
}

// Publish delivers the event to local subscribers. It never fails.
func (h *Hub) Publish(_ context.Context, e domain.Event) error {
	h.Broadcast(e)
	return nil
}

func (h *Hub) Broadcast(e domain.Event) {
	if e.ShiftID == "" {
		return
	}
	msg, err := json.Marshal(e)
	if err != nil {
		logx.L().Warn("ws_marshal_failed", zap.Error(err))
		return
	}
	var slow []*client
	h.mu.RLock()
	for c := range h.subs[e.ShiftID] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range slow {
		logx.L().Warn("ws_client_dropped", zap.String("shift_id", e.ShiftID), zap.String("user_id", c.userID))
		h.remove(e.ShiftID, c)
	}
}

// Subscribers returns the number of open connections on a shift.
func (h *Hub) Subscribers(shiftID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[shiftID])
}

func (h *Hub) add(shiftID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[shiftID]
	if !ok {
		set = make(map[*client]struct{})
		h.subs[shiftID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(shiftID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[shiftID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.subs, shiftID)
	}
}

// Serve upgrades the request and streams the shift's events until the
// client goes away. Authorization happens before Serve is called.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, shiftID, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, h.Buffer), userID: userID}
	h.add(shiftID, c)

	log := logx.WithFields(r.Context()).With(zap.String("shift_id", shiftID), zap.String("user_id", userID))
	log.Info("ws_connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(c)
	}()
	h.readPump(c)
	h.remove(shiftID, c)
	<-done
	log.Info("ws_disconnected")
	return nil
}

// readPump discards inbound frames; messages are posted over HTTP.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * h.PingInterval))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * h.PingInterval))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
