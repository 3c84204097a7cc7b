package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZertGraf/team-feedback/internal/api/handler"
	"github.com/ZertGraf/team-feedback/internal/api/middleware"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Members       *handler.MemberHandler
	Feedback      *handler.FeedbackHandler
	Notifications *handler.NotificationHandler
	Viewers       middleware.ViewerResolver

	// Health reports storage health; nil means always healthy.
	Health func(ctx context.Context) error
}

type HTTPServer struct {
	server *http.Server
	config *ServerConfig
	logger *logger.Logger
}

func NewHTTPServer(config *ServerConfig, handlers Handlers, logger *logger.Logger) *HTTPServer {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      NewRouter(handlers, logger),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &HTTPServer{
		server: server,
		config: config,
		logger: logger.Component("http"),
	}
}

func (s *HTTPServer) Start(_ context.Context) error {
	go func() {
		s.logger.Info("http server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "error", err)
		}
	}()

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping http server")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown failed", "error", err)
		return err
	}

	s.logger.Info("http server stopped")
	return nil
}

// NewRouter wires middleware and routes. Everything except /health acts on
// behalf of the member named in the X-Member-ID header.
func NewRouter(handlers Handlers, logger *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Security())
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, `{"status":"healthy"}`
		if handlers.Health != nil {
			if err := handlers.Health(r.Context()); err != nil {
				logger.Warn("health check failed", "error", err)
				status, body = http.StatusServiceUnavailable, `{"status":"unhealthy"}`
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Viewer(handlers.Viewers, logger))

		r.Get("/me", handlers.Members.Me)
		r.Mount("/members", handlers.Members.Routes())
		r.Mount("/feedback", handlers.Feedback.Routes())
		r.Mount("/notifications", handlers.Notifications.Routes())
	})

	return r
}
