package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("something broke")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, float64(http.StatusInternalServerError), body["statusCode"])
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRecovery_LogsPanicContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RecoveryWithConfig(RecoveryConfig{
		Logger:           zap.New(core),
		EnableStackTrace: true,
	}))
	router.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// One entry for the classified snapshot, one for the raw stack.
	require.Equal(t, 2, logs.Len())

	snapshot := logs.All()[0]
	assert.Equal(t, "unexpected failure while handling request", snapshot.Message)

	fields := snapshot.ContextMap()
	ctx, ok := fields["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kaboom", ctx["panic"])
	assert.Equal(t, "GET", ctx["method"])
	assert.Equal(t, "/panic", ctx["path"])
	assert.NotEmpty(t, ctx["request_id"])

	stackEntry := logs.All()[1]
	assert.Equal(t, "panic stack", stackEntry.Message)
	assert.NotEmpty(t, stackEntry.ContextMap()["stack"])
}

func TestRecoveryWithConfig_CustomPanicHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured any
	router := gin.New()
	router.Use(RecoveryWithConfig(RecoveryConfig{
		PanicHandler: func(c *gin.Context, err any) {
			captured = err
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"message": "custom",
			})
		},
	}))
	router.GET("/panic", func(c *gin.Context) {
		panic("handled elsewhere")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "handled elsewhere", captured)
}

func TestRecoveryWithConfig_StackTraceDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(RecoveryWithConfig(RecoveryConfig{
		Logger:           zap.New(core),
		EnableStackTrace: false,
	}))
	router.GET("/panic", func(c *gin.Context) {
		panic("quiet")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unexpected failure while handling request", logs.All()[0].Message)
}
