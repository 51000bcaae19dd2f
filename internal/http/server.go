// Package http provides the API and metrics HTTP servers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	clientsHTTP "github.com/clientguard/clientguard/internal/clients/http"
	identityHTTP "github.com/clientguard/clientguard/internal/identity/http"
	identityUseCase "github.com/clientguard/clientguard/internal/identity/usecase"
	"github.com/clientguard/clientguard/internal/metrics"
	securityHTTP "github.com/clientguard/clientguard/internal/security/http"
)

// RouterConfig holds everything the API router needs: the resolved handlers
// for the protected area and the middleware configuration.
type RouterConfig struct {
	Logger *slog.Logger

	// Session resolution for the protected area.
	SessionUseCase    identityUseCase.SessionUseCase
	SessionCookieName string

	// Per-caller rate limiting for the protected area.
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// CORS, disabled by default.
	CORSEnabled      bool
	CORSAllowOrigins string

	// HTTP metrics, skipped when the provider is nil.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string

	// Gate and handlers.
	Recorder      *securityHTTP.Recorder
	ClientHandler *clientsHTTP.ClientHandler
	ReportHandler *securityHTTP.ReportHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server with the full middleware chain and the
// client area routes registered.
func NewServer(host string, port int, routerConfig RouterConfig) *Server {
	router := NewRouter(routerConfig)

	return &Server{
		logger: routerConfig.Logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// NewRouter assembles the Gin engine: global middleware, health endpoints,
// and the gated client area.
//
// Everything under /clients sits behind the session middleware and the access
// gate, including the security report. The gate rejects anonymous callers and
// records one event per request before any handler runs.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(requestid.New())
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			cfg.MetricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler)

	clients := router.Group("/clients")
	clients.Use(identityHTTP.SessionMiddleware(cfg.SessionUseCase, cfg.SessionCookieName, cfg.Logger))
	if cfg.RateLimitEnabled {
		clients.Use(identityHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			cfg.Logger,
		))
	}
	clients.Use(securityHTTP.AccessGate(cfg.Recorder))

	clients.GET("", cfg.ClientHandler.ListHandler)
	clients.GET("/:id", cfg.ClientHandler.DetailHandler)
	clients.POST("/create", cfg.ClientHandler.CreateHandler)
	clients.POST("/:id/update", cfg.ClientHandler.UpdateHandler)
	clients.PUT("/:id/update", cfg.ClientHandler.UpdateHandler)
	clients.PATCH("/:id/update", cfg.ClientHandler.UpdateHandler)
	clients.DELETE("/:id/delete", cfg.ClientHandler.DeleteHandler)
	clients.GET("/security/report", cfg.ReportHandler.ReportHandler)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
