package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-closures/internal/shared/logger"
)

// RecoveryMiddleware provides panic recovery functionality
type RecoveryMiddleware struct {
	logger *logger.Logger
}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware(log *logger.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: log.Named("recovery"),
	}
}

// GinRecover provides Gin-compatible panic recovery middleware
func (m *RecoveryMiddleware) GinRecover(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			requestID := c.GetString(string(RequestIDKey))

			m.logger.Error(
				"Panic recovered",
				zap.Any("error", err),
				zap.String("stack", string(debug.Stack())),
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "internal server error",
				"request_id": requestID,
			})
		}
	}()

	c.Next()
}
