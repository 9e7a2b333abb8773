package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faultkit/faultkit/apperror"
)

// ErrorHandlerConfig holds configuration for the error handler middleware.
type ErrorHandlerConfig struct {
	// Logger receives the formatted snapshot of every handled error.
	Logger *zap.Logger

	// LogStacks includes captured stack traces in the logged snapshot.
	// Stacks are never written to responses.
	LogStacks bool
}

// ErrorHandler returns a middleware that renders errors collected on the
// gin context. The last error wins; its classified status becomes the
// response status (500 for unclassified errors) and the formatted
// snapshot becomes the JSON body.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return ErrorHandlerWithConfig(ErrorHandlerConfig{
		Logger:    logger,
		LogStacks: true,
	})
}

// ErrorHandlerWithConfig returns an error handler middleware with custom
// configuration.
func ErrorHandlerWithConfig(config ErrorHandlerConfig) gin.HandlerFunc {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	sink := apperror.ZapSink(config.Logger)

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		logOpts := []apperror.FormatOption{
			apperror.WithFormatField("method", c.Request.Method),
			apperror.WithFormatField("path", c.Request.URL.Path),
			apperror.WithSink(sink),
		}
		if requestID := GetRequestID(c); requestID != "" {
			logOpts = append(logOpts, apperror.WithFormatField("request_id", requestID))
		}
		if config.LogStacks {
			logOpts = append(logOpts, apperror.IncludeStack())
		}
		apperror.Handle(err, logOpts...)

		if c.Writer.Written() {
			return
		}

		// Response snapshot is formatted separately so stacks and
		// request metadata stay out of the body.
		body := apperror.Format(err)
		if requestID := GetRequestID(c); requestID != "" {
			body = apperror.Format(err, apperror.WithFormatField("request_id", requestID))
		}
		c.AbortWithStatusJSON(apperror.HTTPStatus(err), body)
	}
}
