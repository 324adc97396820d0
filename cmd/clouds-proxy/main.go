package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/aiven-clouds-proxy/internal/api/http"
	"github.com/i474232898/aiven-clouds-proxy/internal/clouds"
	"github.com/i474232898/aiven-clouds-proxy/internal/clouds/upstream"
	"github.com/i474232898/aiven-clouds-proxy/internal/config"
	"github.com/i474232898/aiven-clouds-proxy/internal/logging"
	"github.com/i474232898/aiven-clouds-proxy/internal/metrics"
	"github.com/i474232898/aiven-clouds-proxy/internal/scheduler"
	"github.com/i474232898/aiven-clouds-proxy/internal/store"
)

const serviceName = "aiven-clouds-proxy"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	backoff := upstream.BackoffConfig{
		MaxRetries:      cfg.UpstreamMaxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
	client := upstream.NewAivenClient(httpClient, cfg.UpstreamURL, backoff)

	// A refresh may use every retry; requests waiting on it give up on their own context.
	fetchBudget := backoff.Budget(cfg.UpstreamTimeout)

	// In-memory cache holding the transformed cloud list.
	cache := store.New[[]clouds.AvailableCloud](cfg.CacheMaxEntries, cfg.CacheTTL,
		store.WithMetrics(metrics.CacheMetrics{}),
		store.WithComputeTimeout(fetchBudget))

	service := clouds.NewService(cache, client)

	// Optional background warmer; it only reaches upstream once the cached list has expired.
	sched := scheduler.New(cfg.WarmInterval, fetchBudget, func(ctx context.Context) error {
		_, err := service.GetAllClouds(ctx)
		return err
	})
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(httpapi.CORS(cfg.CORSOrigin))

	// API routes.
	httpapi.RegisterOpsRoutes(app, serviceName)
	httpapi.RegisterRoutes(app, service)

	go func() {
		log.WithField("port", cfg.Port).Info("listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
