package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-closures/internal/app/api"
	"go-closures/internal/app/bootstrap"
	"go-closures/internal/app/config"
	"go-closures/internal/app/demo"
)

const configPath = "./configs"

func main() {
	// Initialize container with all dependencies
	container, err := bootstrap.NewContainer(bootstrap.ContainerOptions{
		ConfigPath: configPath,
	})
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Ensure graceful cleanup
	defer func() {
		if err := container.Close(); err != nil {
			container.Logger.Error("Failed to close container gracefully", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := demo.Options{
		Config:   container.Config,
		Logger:   container.Logger,
		Observer: container.Observer(),
	}
	if _, err := demo.Run(ctx, opts); err != nil {
		container.Logger.Error("Demo failed", zap.Error(err))
		return
	}

	if container.Config.MetricsAddr == "" || container.Metrics == nil {
		return
	}

	server := api.NewServer(&api.ServerOptions{
		Config:             container.Config,
		Logger:             container.Logger,
		LoggingMiddleware:  container.LoggingMiddleware,
		RecoveryMiddleware: container.RecoveryMiddleware,
		Metrics:            container.Metrics,
		StartedAt:          container.StartedAt,
	})

	go func() {
		if err := server.Start(); err != nil {
			container.Logger.Error("Failed to start server", zap.Error(err))
			stop()
		}
	}()

	// Replay the demo whenever the config file changes so its effect shows up in the metrics
	_, err = config.Watch(configPath, func(cfg *config.Config, err error) {
		if err != nil {
			container.Logger.Warn("Ignoring config change", zap.Error(err))
			return
		}
		container.Logger.Info("Config changed, replaying demo")
		replay := opts
		replay.Config = cfg
		if _, err := demo.Run(ctx, replay); err != nil {
			container.Logger.Error("Demo replay failed", zap.Error(err))
		}
	})
	if err != nil {
		container.Logger.Warn("Config watch disabled", zap.Error(err))
	}

	container.Logger.Info("Serving metrics until interrupted",
		zap.String("addr", container.Config.MetricsAddr),
		zap.String("path", container.Config.MetricsPath))

	<-ctx.Done()
	container.Logger.Info("Server is shutting down...")

	// Create a deadline for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown failed", zap.Error(err))
		return
	}

	container.Logger.Info("Server gracefully stopped")
}
