package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/careerhub/frontdesk/config"
	"github.com/careerhub/frontdesk/internal/apiclient"
	"github.com/careerhub/frontdesk/internal/handlers"
	"github.com/careerhub/frontdesk/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *logging.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(cfg config.Config, log *logging.Logger) (*Server, error) {
	if cfg.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if log == nil {
		log = logging.Nop()
	}

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.SessionToken,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: allowCredentials(cfg.CORS.AllowedOrigins),
			MaxAge:           300,
		}),
	)
	handlers.NewHandler(client, log).Router(router)

	port := cfg.ServerPort
	if port == 0 {
		port = 8081
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		log:        log,
	}, nil
}

// allowCredentials reports whether cookies may cross origins. Browsers
// reject credentials paired with a wildcard origin.
func allowCredentials(origins []string) bool {
	if len(origins) == 0 {
		return false
	}
	for _, origin := range origins {
		if origin == "*" {
			return false
		}
	}
	return true
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
