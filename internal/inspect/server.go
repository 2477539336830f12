// Package inspect serves a read-only view of the running editor: health,
// the latest session snapshot, Prometheus metrics and a websocket stream of
// snapshots.
package inspect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DefaultOrigins are the browser origins allowed to open the stream.
var DefaultOrigins = []string{"localhost:*", "127.0.0.1:*"}

type Server struct {
	hub     *Hub
	origins []string
	srv     *http.Server
}

// NewServer builds the inspector routes. metrics may be nil.
func NewServer(addr string, hub *Hub, metrics http.Handler) *Server {
	s := &Server{hub: hub, origins: DefaultOrigins}

	r := mux.NewRouter()
	r.Use(Recovery)
	r.Use(Logger)

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/debug/state", s.state).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}
	r.HandleFunc("/ws/inspect", s.stream)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// an error.
func (s *Server) ListenAndServe() error {
	slog.Info("inspector starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("inspector shutting down")
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	data, seq := s.hub.Latest()
	if seq == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"no frame rendered yet"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(s.hub, conn, uuid.New().String(), r.RemoteAddr)
	if !s.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "inspector stopped")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
