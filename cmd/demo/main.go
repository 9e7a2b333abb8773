// Package main is a small demonstration server wiring the toolkit
// together: structured errors, the gin middleware adapters, the retry
// executor with a circuit breaker, config reload, and metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/faultkit/faultkit/apperror"
	"github.com/faultkit/faultkit/config"
	"github.com/faultkit/faultkit/middleware"
	"github.com/faultkit/faultkit/observability"
	"github.com/faultkit/faultkit/retry"
)

func main() {
	configPath := flag.String("config", getEnvOrDefault("FAULTKIT_CONFIG_PATH", "configs/demo.yaml"),
		"Path to configuration file")
	addr := flag.String("addr", getEnvOrDefault("FAULTKIT_ADDR", ":8080"),
		"Listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	logger, err := observability.NewLogger(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	observability.SetGlobalLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var policy atomic.Pointer[retry.Policy]
	policy.Store(cfg.Retry.Policy())
	if watcher, werr := config.NewWatcher(*configPath, func(updated *config.Config) {
		p := updated.Retry.Policy()
		policy.Store(p)
		logger.Info("retry policy updated",
			observability.Int("max_retries", p.MaxRetries),
			observability.String("strategy", string(p.Strategy)),
		)
	}, config.WithLogger(logger)); werr == nil {
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("config watcher disabled", observability.Error(err))
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "flaky-downstream",
		Timeout: 10 * time.Second,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger.Zap()))
	router.Use(middleware.ErrorHandler(logger.Zap()))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/flaky", func(c *gin.Context) {
		p := *policy.Load()
		p.Operation = "flaky-downstream"
		p.RetryIf = retry.SkipOpenCircuit(retry.RetryableStatuses())
		p.Logger = logger.Zap()

		result, err := retry.Execute(c.Request.Context(), &p,
			retry.WithBreaker(breaker, callFlakyDownstream))
		if err != nil {
			status := apperror.HTTPStatus(err)
			attempts := len(retry.AttemptLog(err))
			_ = c.Error(apperror.Wrap(err, "downstream call failed",
				apperror.WithStatus(status),
				apperror.WithCode("DOWNSTREAM_FAILED"),
				apperror.WithField("attempts", attempts),
			))
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("demo server listening", observability.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", observability.Error(err))
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", observability.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", observability.Error(err))
	}
}

// callFlakyDownstream simulates a downstream dependency that fails most
// of the time with a transient status.
func callFlakyDownstream(ctx context.Context) (string, error) {
	if rand.Float64() < 0.7 { //nolint:gosec // demo traffic shaping, not security
		return "", apperror.ServiceUnavailable("downstream unavailable")
	}
	return "ok", nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
