package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faultkit/faultkit/apperror"
)

// RecoveryConfig holds configuration for the recovery middleware.
type RecoveryConfig struct {
	Logger           *zap.Logger
	EnableStackTrace bool
	PanicHandler     func(c *gin.Context, err any)
}

// Recovery returns a middleware that recovers from panics. The panic is
// classified as an internal operational error and rendered through the
// same formatting path as handled errors.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return RecoveryWithConfig(RecoveryConfig{
		Logger:           logger,
		EnableStackTrace: true,
	})
}

// RecoveryWithConfig returns a recovery middleware with custom
// configuration.
func RecoveryWithConfig(config RecoveryConfig) gin.HandlerFunc {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	sink := apperror.ZapSink(config.Logger)

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var stack []byte
				if config.EnableStackTrace {
					stack = debug.Stack()
				}

				appErr := apperror.Internal("unexpected failure while handling request",
					apperror.WithField("panic", fmt.Sprint(r)),
					apperror.WithField("method", c.Request.Method),
					apperror.WithField("path", c.Request.URL.Path),
				)

				logOpts := []apperror.FormatOption{apperror.WithSink(sink)}
				if requestID := GetRequestID(c); requestID != "" {
					logOpts = append(logOpts,
						apperror.WithFormatField("request_id", requestID))
				}
				apperror.Handle(appErr, logOpts...)

				if config.EnableStackTrace {
					config.Logger.Error("panic stack",
						zap.ByteString("stack", stack),
					)
				}

				if config.PanicHandler != nil {
					config.PanicHandler(c, r)
					return
				}

				if !c.IsAborted() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"message":    "An unexpected error occurred",
						"code":       "INTERNAL",
						"statusCode": http.StatusInternalServerError,
					})
				}
			}
		}()

		c.Next()
	}
}
