package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func useObserver(t *testing.T) *observer.ObservedLogs {
	core, observed := observer.New(zapcore.InfoLevel)
	original := log
	log = zap.New(core)
	t.Cleanup(func() { log = original })
	return observed
}

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	for _, env := range []string{"production", "development", "test"} {
		t.Run(env, func(t *testing.T) {
			Init(env)
			assert.NotNil(t, log)
		})
	}
}

func TestL(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	log = nil
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "test-request-id-123"

	t.Run("WithRequestID", func(t *testing.T) {
		newCtx := WithRequestID(ctx, reqID)
		assert.Equal(t, reqID, newCtx.Value(requestIDKey))
	})

	t.Run("RequestIDFrom", func(t *testing.T) {
		assert.Equal(t, reqID, RequestIDFrom(WithRequestID(ctx, reqID)))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})
}

func TestFromCtx(t *testing.T) {
	observed := useObserver(t)

	t.Run("WithRequestAndUser", func(t *testing.T) {
		ctx := utils.SetUserContext(WithRequestID(context.Background(), "req-abc-123"), "user-1")

		FromCtx(ctx).Info("test message with id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "user-1", fields["user_id"])
	})

	t.Run("WithoutIDs", func(t *testing.T) {
		FromCtx(context.Background()).Info("test message without id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		assert.NotEmpty(t, RequestIDFrom(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := useObserver(t)

	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	logs := observed.TakeAll()
	assert.Len(t, logs, 2)
	assert.Equal(t, "incoming request", logs[0].Message)
	assert.Equal(t, "/test", logs[0].ContextMap()["path"])
	assert.Equal(t, zapcore.InfoLevel, logs[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs[1].Level)
}
