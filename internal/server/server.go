// Package server exposes the monitor's HTTP surface: the WebSocket feed of
// device events and a JSON snapshot endpoint.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/soar/xrbridge/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	refresher   hub.TrackerRefresher
	addr        string
	logger      *slog.Logger
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, refresher hub.TrackerRefresher, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hub:         h,
		broadcaster: b,
		refresher:   refresher,
		addr:        addr,
		logger:      logger,
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.refresher, s.logger))

	// JSON snapshot of the device table
	mux.HandleFunc("/api/devices", s.handleDevices)

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.logger.Info("monitor server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Info("shutting down monitor server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.broadcaster.Status()); err != nil {
		s.logger.Error("encode device snapshot", "error", err)
	}
}
