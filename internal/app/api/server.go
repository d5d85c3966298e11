package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-closures/internal/app/config"
	"go-closures/internal/shared/logger"
	"go-closures/internal/shared/metrics"
	customMiddleware "go-closures/internal/shared/middleware"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	config *config.Config
	logger *logger.Logger
}

// ServerOptions holds the server dependencies
type ServerOptions struct {
	Config             *config.Config
	Logger             *logger.Logger
	LoggingMiddleware  *customMiddleware.LoggingMiddleware
	RecoveryMiddleware *customMiddleware.RecoveryMiddleware
	Metrics            *metrics.Metrics
	StartedAt          time.Time
}

// NewServer creates a new HTTP server
func NewServer(opts *ServerOptions) *Server {
	// Set Gin mode based on environment
	switch opts.Config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(customMiddleware.RequestID())
	r.Use(opts.LoggingMiddleware.GinLogRequest)
	r.Use(opts.RecoveryMiddleware.GinRecover)

	// Add metrics middleware if available
	if opts.Metrics != nil {
		r.Use(opts.Metrics.GinMiddleware())
	}

	setupRoutes(r, opts)

	srv := &http.Server{
		Addr:         opts.Config.MetricsAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		server: srv,
		router: r,
		config: opts.Config,
		logger: opts.Logger.Named("server"),
	}
}

// setupRoutes configures all the routes for the application
func setupRoutes(r *gin.Engine, opts *ServerOptions) {
	startedAt := opts.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	r.GET("/health", func(c *gin.Context) {
		uptime := time.Since(startedAt)
		if opts.Metrics != nil {
			opts.Metrics.RecordUptime(uptime)
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": uptime.Round(time.Second).String(),
		})
	})

	// Metrics endpoint (if metrics are enabled)
	if opts.Metrics != nil {
		r.GET(opts.Config.MetricsPath, opts.Metrics.GinMetricsHandler())
	}
}

// Handler returns the router serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
