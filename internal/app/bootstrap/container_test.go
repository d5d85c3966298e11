package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"go-closures/internal/app/config"
)

func TestNewContainerFromPath(t *testing.T) {
	dir := t.TempDir()
	body := "environment: test\nmetrics_enabled: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := NewContainer(ContainerOptions{ConfigPath: dir})
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer c.Close()

	if c.Config.Environment != "test" {
		t.Errorf("expected test environment, got %q", c.Config.Environment)
	}
	if c.Metrics != nil {
		t.Error("expected metrics to be disabled")
	}
	if c.Observer() != nil {
		t.Error("expected nil observer without metrics")
	}
	if c.LoggingMiddleware == nil || c.RecoveryMiddleware == nil {
		t.Error("expected middleware to be initialized")
	}
}

func TestNewContainerWithMetrics(t *testing.T) {
	c, err := NewContainer(ContainerOptions{Config: &config.Config{
		Environment:    "test",
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}})
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer c.Close()

	if c.Metrics == nil {
		t.Fatal("expected metrics")
	}
	if c.Observer() == nil {
		t.Fatal("expected metrics to act as observer")
	}
}

func TestNewContainerBadConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("environment: staging\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := NewContainer(ContainerOptions{ConfigPath: dir}); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
