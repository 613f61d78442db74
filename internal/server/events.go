package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

// Message types sent on the event stream.
const (
	MessageSnapshot = "snapshot"
	MessageEvent    = "event"
	MessageLine     = "line"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// Message is one frame of the event stream. The first frame of a
// connection is a snapshot; every following frame is an event or a
// companion line said outside of an event. HoldMS tells how long the
// line's expression lasts before the face relaxes.
type Message struct {
	Type   string          `json:"type"`
	Status *Status         `json:"status,omitempty"`
	Event  *pomodoro.Event `json:"event,omitempty"`
	Line   *companion.Line `json:"line,omitempty"`
	HoldMS int64           `json:"hold_ms,omitempty"`
}

func lineMessage(typ string, line companion.Line) Message {
	return Message{Type: typ, Line: &line, HoldMS: companion.HoldFor(line.Cue).Milliseconds()}
}

type client struct {
	send    chan Message
	dropped int
}

// hub fans events out to websocket clients without blocking the publisher.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	logger  *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{clients: map[*client]struct{}{}, logger: logger}
}

func (h *hub) register() (*client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	c := &client{send: make(chan Message, clientBuffer)}
	h.clients[c] = struct{}{}
	return c, true
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			c.dropped++
			if c.dropped == 1 || c.dropped%100 == 0 {
				h.logger.Warn("event stream client is slow, dropping events", "dropped", c.dropped)
			}
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Error("failed to accept websocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "stream ended"); closeErr != nil {
			s.logger.Debug("failed to close websocket", "error", closeErr)
		}
	}()

	c, status, ok := s.subscribe()
	if !ok {
		return
	}
	defer s.hub.unregister(c)

	// Clients only listen; reading is needed to notice close frames.
	ctx := ws.CloseRead(r.Context())

	if err := s.write(ctx, ws, Message{Type: MessageSnapshot, Status: &status}); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-c.send:
			if !open {
				return
			}
			if err := s.write(ctx, ws, msg); err != nil {
				return
			}
		}
	}
}

// subscribe registers a client and captures its snapshot under the driver
// lock, so every event after the snapshot reaches the client exactly once.
func (s *Server) subscribe() (*client, Status, bool) {
	var (
		c      *client
		status Status
	)
	ok := s.driver.Do(func(session *pomodoro.Session) bool {
		var registered bool
		c, registered = s.hub.register()
		status = s.status(pomodoro.Snapshot{Config: session.Config(), State: session.State()})
		return registered
	})
	return c, status, ok
}

func (s *Server) write(ctx context.Context, ws *websocket.Conn, msg Message) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, ws, msg); err != nil {
		if ctx.Err() == nil {
			s.logger.Debug("websocket write error", "error", err)
		}
		return err
	}
	return nil
}
