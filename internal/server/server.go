// Package server exposes a driven pomodoro session over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:7272"

const shutdownTimeout = 5 * time.Second

// Status is the body of GET /api/status and of operation responses.
type Status struct {
	pomodoro.Snapshot
	Title       string `json:"title"`
	CyclesInSet int    `json:"cycles_in_set"`
}

// Server serves the API for one driver.
type Server struct {
	driver    *pomodoro.Driver
	companion *companion.Companion
	hub       *hub
	logger    *slog.Logger
}

// New creates a server and subscribes it to the driver's events. comp may
// be nil, in which case streamed events carry no companion line.
func New(driver *pomodoro.Driver, comp *companion.Companion, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		driver:    driver,
		companion: comp,
		hub:       newHub(logger),
		logger:    logger,
	}
	driver.Subscribe(s.publish)
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Put("/config", s.handleConfig)
		r.Post("/start", s.handleOp("start"))
		r.Post("/toggle", s.handleOp("toggle_pause"))
		r.Post("/snooze", s.handleOp("snooze"))
		r.Post("/skip", s.handleOp("skip"))
		r.Post("/reset", s.handleOp("reset"))
		r.Post("/talk", s.handleTalk)
		r.Get("/events", s.handleEvents)
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("api stopped")
	return nil
}

func (s *Server) status(snapshot pomodoro.Snapshot) Status {
	return Status{
		Snapshot:    snapshot,
		Title:       snapshot.State.Phase.Title(),
		CyclesInSet: snapshot.State.CyclesInSet(snapshot.Config),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status(s.driver.Snapshot()))
}

func (s *Server) handleOp(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snapshot, err := s.driver.Apply(name)
		switch {
		case errors.Is(err, pomodoro.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, errorBody{Error: err.Error(), Status: s.status(snapshot)})
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeJSON(w, http.StatusOK, s.status(snapshot))
		}
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.driver.Snapshot().Config
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.driver.SetConfig(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.status(s.driver.Snapshot()))
}

// handleTalk makes the companion say a random idle line. The line is
// returned and also pushed to the event stream.
func (s *Server) handleTalk(w http.ResponseWriter, _ *http.Request) {
	if s.companion == nil {
		writeError(w, http.StatusNotFound, "companion disabled")
		return
	}
	var msg Message
	// The companion's random source is shared with publish, which runs
	// under the driver lock.
	ok := s.driver.Do(func(*pomodoro.Session) bool {
		line, ok := s.companion.Chatter()
		if ok {
			msg = lineMessage(MessageLine, line)
			s.hub.broadcast(msg)
		}
		return ok
	})
	if !ok {
		writeError(w, http.StatusNotFound, "no chatter lines configured")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// publish runs under the driver lock and must not block.
func (s *Server) publish(event pomodoro.Event) {
	msg := Message{Type: MessageEvent, Event: &event}
	if s.companion != nil {
		if line, ok := s.companion.React(event); ok {
			msg = lineMessage(MessageEvent, line)
			msg.Event = &event
		}
	}
	s.hub.broadcast(msg)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

type errorBody struct {
	Error  string `json:"error"`
	Status Status `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
