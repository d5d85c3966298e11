package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-closures/internal/shared/logger"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func newRouter(log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(NewLoggingMiddleware(log).GinLogRequest)
	r.Use(NewRecoveryMiddleware(log).GinRecover)
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	log, logs := newObservedLogger()
	r := newRouter(log)

	var fromContext string
	r.GET("/", func(c *gin.Context) {
		fromContext = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	if !strings.HasPrefix(id, "req-") {
		t.Fatalf("expected generated request id, got %q", id)
	}
	if fromContext != id {
		t.Fatalf("expected context id %q, got %q", id, fromContext)
	}

	completed := logs.FilterMessage("Request completed").All()
	if len(completed) != 1 {
		t.Fatalf("expected 1 completion log, got %d", len(completed))
	}
	fields := completed[0].ContextMap()
	if fields["request_id"] != id {
		t.Errorf("expected request_id %q, got %v", id, fields["request_id"])
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Errorf("expected status 204, got %v", fields["status"])
	}
}

func TestRequestIDPropagated(t *testing.T) {
	log, _ := newObservedLogger()
	r := newRouter(log)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "caller-1" {
		t.Fatalf("expected caller-1, got %q", got)
	}
}

func TestRecoverFromPanic(t *testing.T) {
	log, logs := newObservedLogger()
	r := newRouter(log)
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if logs.FilterMessage("Panic recovered").Len() != 1 {
		t.Fatal("expected panic to be logged")
	}
}
