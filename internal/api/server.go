package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/handlers"
	"github.com/eshaffer321/ateema-proposal-engine/internal/api/middleware"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/config"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           config.DefaultPort,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// ConfigFrom builds a server config from the application config.
func ConfigFrom(cfg config.APIConfig) Config {
	out := DefaultConfig()
	if cfg.Port != 0 {
		out.Port = cfg.Port
	}
	if len(cfg.AllowedOrigins) > 0 {
		out.AllowedOrigins = cfg.AllowedOrigins
	}
	return out
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	service    *service.ProposalService
}

// NewServer creates a new API server.
func NewServer(cfg Config, svc *service.ProposalService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		router:  gin.New(),
		logger:  logger,
		service: svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	// Request logging
	s.router.Use(middleware.Logging(s.logger, "/health"))

	// CORS
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = s.config.AllowedOrigins
	s.router.Use(middleware.CORS(corsConfig))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.router.GET("/health", handlers.Health)

	api := s.router.Group("/api")
	{
		// Catalog
		products := handlers.NewProductsHandler(s.service)
		api.GET("/products", products.List)
		api.GET("/products/:name", products.Get)

		// Proposals
		proposals := handlers.NewProposalsHandler(s.service, s.logger)
		api.POST("/proposals", proposals.Create)
		api.GET("/proposals", proposals.List)
		api.GET("/proposals/:id", proposals.Get)

		// Discounts
		discounts := handlers.NewDiscountsHandler(s.service)
		api.POST("/discounts", discounts.Resolve)

		// Awards
		awards := handlers.NewAwardsHandler(s.service)
		api.GET("/awards", awards.List)
	}
}

// Start serves until Shutdown. A server shut down before Start returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the HTTP handler for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
