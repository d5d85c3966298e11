package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap.Logger to provide structured logging
type Logger struct {
	*zap.Logger
}

// Options controls where and how the logger writes
type Options struct {
	// Environment selects JSON output for "production" and colored console output otherwise
	Environment string

	// Dir enables level-split rotating log files when set
	Dir string
}

// New creates a new logger instance based on the environment
func New(opts Options) (*Logger, error) {
	var cores []zapcore.Core

	if opts.Environment == "production" {
		// Structured JSON on stdout
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapcore.InfoLevel,
		))
	} else {
		// Human-readable colored logs
		consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig),
			zapcore.AddSync(os.Stdout),
			zapcore.DebugLevel,
		))
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		cores = append(cores, fileCores(opts.Dir)...)
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{Logger: logger}, nil
}

// fileCores routes each level to its own rotated file
func fileCores(dir string) []zapcore.Core {
	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder // No colors for files

	levels := []struct {
		file  string
		level zapcore.Level
	}{
		{"info.log", zapcore.InfoLevel},
		{"error.log", zapcore.ErrorLevel},
		{"warn.log", zapcore.WarnLevel},
		{"debug.log", zapcore.DebugLevel},
	}

	cores := make([]zapcore.Core, 0, len(levels))
	for _, l := range levels {
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(dir, l.file),
			MaxSize:    100, // megabytes
			MaxBackups: 30,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			zapcore.AddSync(writer),
			l.level,
		))
	}
	return cores
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a named logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger: l.Logger.Named(name),
	}
}

// With creates a child logger with the given fields
func (l *Logger) With(fields ...zapcore.Field) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

// Sugar returns a sugared logger
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.Logger.Sugar()
}

// Report logs msg at info level, so a Logger can be handed to the
// closures factories as their reporting sink
func (l *Logger) Report(msg string) {
	l.Logger.Info(msg)
}
