package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
	"github.com/ngondo96v1/NDV26V/internal/adapters/http/middleware"
	"github.com/ngondo96v1/NDV26V/internal/adapters/http/routes"
	"github.com/ngondo96v1/NDV26V/internal/config"
	"github.com/ngondo96v1/NDV26V/internal/core/services"
	"github.com/ngondo96v1/NDV26V/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "github.com/ngondo96v1/NDV26V/docs" // Swagger docs
)

// @title NDV26V Sync API
// @version 1.0
// @description Bulk pull/push persistence backend for the NDV26V lending client.

// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logger.Setup(logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})

	if cfg.IsProd() && cfg.Store.Driver == config.DriverMemory {
		logrus.Warn("⚠️ STORE_DRIVER=memory in prod mode: data will not survive a restart")
	}

	// The store connects lazily; a failure here only delays readiness
	conn := config.NewConnection(cfg)
	if err := conn.EnsureConnected(context.Background()); err != nil {
		logrus.Warn("⚠️ Store not reachable at startup, will retry on demand")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := conn.Close(ctx); err != nil {
			logrus.WithError(err).Error("❌ Error closing store")
		}
	}()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	// Shared limiter counters when Redis is configured
	var storage fiber.Storage
	if client := config.NewRedisClient(cfg.Redis); client != nil {
		redisStorage := middleware.NewRedisStorage(client, "ndv:limiter:")
		defer redisStorage.Close()
		storage = redisStorage
	}

	monitor := services.NewConnectionMonitor(conn, cfg.Store.CheckSchedule)
	if err := monitor.Start(); err != nil {
		logrus.Fatalf("❌ Failed to start connection monitor: %v", err)
	}
	defer monitor.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NDV26V Sync API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    cfg.BodyLimit,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, storage)

	// Setup routes
	routes.Setup(app, conn, cfg, publisher)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	logrus.Infof("🚀 Server starting on port %s [MODE: %s, STORE: %s]", cfg.Port, cfg.AppMode, cfg.Store.Driver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Errorf("❌ Failed to start server: %v", err)
	}
}

// newPublisher returns the RabbitMQ publisher, or a no-op one when AMQP is
// not configured or unreachable
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
	if err != nil {
		logrus.WithError(err).Warn("⚠️ RabbitMQ unreachable, sync events disabled")
		return events.NopPublisher{}
	}

	logrus.Info("✅ RabbitMQ connected, publishing sync events")
	return publisher
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logrus.Errorf("❌ Error during shutdown: %v", err)
	}
	logrus.Info("✅ Server stopped gracefully")
}
