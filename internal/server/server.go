// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kushi-chatbot/internal/chat"
	"kushi-chatbot/internal/common/config"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Pinger is checked by /ready. database.RedisClient satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	redis      Pinger
	logger     Logger
}

// New wires the chat routes, health endpoints and /metrics. redis may be nil.
func New(cfg *config.Config, chatHandler http.Handler, redis Pinger, log Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		redis:  redis,
		logger: log,
	}

	withCORS := CORS(cfg.CORS.AllowedOrigins, chatHandler)
	s.mux.Handle(chat.RouteChat, withCORS)
	s.mux.Handle(chat.RouteQuery, withCORS)
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/ready", s.ready)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	return s
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Kushi chatbot running", map[string]interface{}{
		"address": "http://" + s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("http server failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "healthy")
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx); err != nil {
			s.logger.Error("readiness check failed", map[string]interface{}{
				"error": err.Error(),
			})
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	writeStatus(w, http.StatusOK, "ready")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
