package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
)

// Server represents the HTTP inspection server
type Server struct {
	router  *chi.Mux
	handler *Handler
	addr    string
	logger  zerolog.Logger
}

// ServerConfig holds configuration for the inspection server
type ServerConfig struct {
	Host      string
	Port      int
	Source    ConfigSource
	Logger    zerolog.Logger
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// NewServer creates a new inspection server with the given configuration
func NewServer(config ServerConfig) (*Server, error) {
	if config.Source == nil {
		return nil, fmt.Errorf("configuration source is required")
	}

	handler := NewHandler(
		config.Source,
		config.Version,
		config.GitCommit,
		config.BuildTime,
		config.GoVersion,
	)

	router := chi.NewRouter()
	setupMiddleware(router, config.Logger)
	setupRoutes(router, handler)

	return &Server{
		router:  router,
		handler: handler,
		addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		logger:  config.Logger,
	}, nil
}

// Handler returns the routed http.Handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// setupMiddleware configures the middleware chain
func setupMiddleware(router *chi.Mux, logger zerolog.Logger) {
	// Request logger; zerolog.Logger.Print logs at debug level
	requestLog := logger.With().Str("component", "http").Logger()
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  &requestLog,
		NoColor: true,
	}))

	// Recoverer from panics
	router.Use(middleware.Recoverer)

	// Timeout for requests
	router.Use(middleware.Timeout(30 * time.Second))

	// Every request re-resolves the declaration from disk
	router.Use(httprate.LimitByIP(100, 1*time.Minute))
}

// setupRoutes configures the server routes
func setupRoutes(router *chi.Mux, handler *Handler) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/version", handler.Version)

		r.Route("/config", func(r chi.Router) {
			r.Get("/", handler.Config)
			r.Get("/aliases", handler.Aliases)
			r.Get("/caching/match", handler.MatchCacheRule)
		})
	})

	// Generated artifacts
	router.Get("/manifest.webmanifest", handler.Manifest)
	router.Get("/vite.config.mjs", handler.ViteConfig)
}

// StartWithContext starts the HTTP server with graceful shutdown support
func (s *Server) StartWithContext(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to signal server errors
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("inspection server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown error")
			return err
		}

		s.logger.Info().Msg("server stopped gracefully")
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
