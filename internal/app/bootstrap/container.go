package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"go-closures/internal/app/config"
	"go-closures/internal/pkg/closures"
	"go-closures/internal/shared/logger"
	"go-closures/internal/shared/metrics"
	"go-closures/internal/shared/middleware"
)

// Container holds all application dependencies
type Container struct {
	// Configuration and Infrastructure
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	// Middleware
	LoggingMiddleware  *middleware.LoggingMiddleware
	RecoveryMiddleware *middleware.RecoveryMiddleware

	StartedAt time.Time
}

// ContainerOptions defines configuration options for the container
type ContainerOptions struct {
	ConfigPath string

	// Config skips loading from ConfigPath when set
	Config *config.Config
}

// NewContainer creates and initializes all application dependencies
func NewContainer(opts ContainerOptions) (*Container, error) {
	container := &Container{StartedAt: time.Now()}

	// Load configuration first
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	container.Config = cfg

	// Initialize logger
	appLogger, err := logger.New(logger.Options{
		Environment: cfg.Environment,
		Dir:         cfg.LogDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	container.Logger = appLogger

	// Initialize metrics if enabled
	if cfg.MetricsEnabled {
		container.Metrics = metrics.New(appLogger)
	}

	container.LoggingMiddleware = middleware.NewLoggingMiddleware(appLogger)
	container.RecoveryMiddleware = middleware.NewRecoveryMiddleware(appLogger)

	if err := container.validate(); err != nil {
		return nil, fmt.Errorf("container validation failed: %w", err)
	}

	container.Logger.Info("Container initialized successfully")
	return container, nil
}

// Observer returns the metrics as a closures.Observer, or nil when metrics are disabled
func (c *Container) Observer() closures.Observer {
	if c.Metrics == nil {
		return nil
	}
	return c.Metrics
}

// validate ensures all critical dependencies are initialized
func (c *Container) validate() error {
	if c.Config == nil {
		return errors.New("config not initialized")
	}
	if c.Logger == nil {
		return errors.New("logger not initialized")
	}
	if c.Config.MetricsEnabled && c.Metrics == nil {
		return errors.New("metrics enabled but not initialized")
	}
	return nil
}

// Close flushes the logger
func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	// Sync on stdout fails with EINVAL on most terminals; nothing to recover there.
	_ = c.Logger.Sync()
	return nil
}
