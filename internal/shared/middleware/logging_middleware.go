package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-closures/internal/shared/logger"
)

// LoggingMiddleware provides request logging functionality
type LoggingMiddleware struct {
	logger *logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log *logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log.Named("http"),
	}
}

// GinLogRequest provides Gin-compatible request logging middleware
func (m *LoggingMiddleware) GinLogRequest(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString(string(RequestIDKey))

	m.logger.Debug(
		"Request started",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("remote_addr", c.ClientIP()),
		zap.String("user_agent", c.GetHeader("User-Agent")),
		zap.String("request_id", requestID),
	)

	// Process request
	c.Next()

	m.logger.Info(
		"Request completed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)
}
