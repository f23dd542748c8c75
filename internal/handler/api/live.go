package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	xlogger "covidash/pkg/logger"
	"covidash/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	liveWriteWait  = 10 * time.Second
	livePingPeriod = 30 * time.Second
	liveSendBuffer = 8
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// LiveHub broadcasts refreshed summary snapshots to connected WebSocket
// clients. Slow clients are dropped rather than allowed to stall the
// broadcast.
type LiveHub struct {
	logger *xlogger.Logger
	rec    *metrics.Recorder

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
	last    []byte
}

func NewLiveHub(logger *xlogger.Logger, rec *metrics.Recorder) *LiveHub {
	return &LiveHub{
		logger:  logger,
		rec:     rec,
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

func (h *LiveHub) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/live", h.serve)
}

// Broadcast fans a JSON-encoded event out to every connected client. The
// latest event is retained and replayed to clients that connect later.
func (h *LiveHub) Broadcast(event string, payload interface{}) {
	b, err := json.Marshal(map[string]interface{}{
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339),
		"data":  payload,
	})
	if err != nil {
		h.logger.Error("live broadcast encode", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	h.last = b
	for conn, send := range h.clients {
		select {
		case send <- b:
		default:
			// drop on backpressure
			h.drop(conn)
		}
	}
	h.mu.Unlock()
}

func (h *LiveHub) serve(c echo.Context) error {
	conn, err := liveUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	send := make(chan []byte, liveSendBuffer)

	h.mu.Lock()
	h.clients[conn] = send
	if h.last != nil {
		send <- h.last
	}
	n := len(h.clients)
	h.mu.Unlock()

	if h.rec != nil {
		h.rec.SetLiveClients(n)
	}
	h.logger.Info("live client connected", xlogger.Int("clients", n))

	go h.writeLoop(conn, send)
	go h.readLoop(conn)
	return nil
}

func (h *LiveHub) writeLoop(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case b, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				h.remove(conn)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(conn)
				return
			}
		}
	}
}

// readLoop discards inbound frames; the endpoint is push-only. Its job is to
// notice the peer going away.
func (h *LiveHub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *LiveHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	h.drop(conn)
	n := len(h.clients)
	h.mu.Unlock()

	if h.rec != nil {
		h.rec.SetLiveClients(n)
	}
}

// drop must be called with mu held.
func (h *LiveHub) drop(conn *websocket.Conn) {
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
		_ = conn.Close()
	}
}
