package routes

import (
	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
	"github.com/ngondo96v1/NDV26V/internal/adapters/http/handlers"
	"github.com/ngondo96v1/NDV26V/internal/adapters/http/middleware"
	"github.com/ngondo96v1/NDV26V/internal/config"
	"github.com/ngondo96v1/NDV26V/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, conn *config.Connection, cfg *config.Config, publisher events.Publisher) {
	// Initialize services
	syncService := services.NewSyncService(conn, publisher)
	settingsService := services.NewSettingsService(conn, publisher)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(conn, cfg)
	syncHandler := handlers.NewSyncHandler(syncService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// ============================================================
	// API routes - every request first tries to bring the store up
	// ============================================================
	api := app.Group("/api", middleware.EnsureConnected(conn))

	api.Get("/db-status", healthHandler.DBStatus)

	api.Get("/data", middleware.NoCacheHeaders(), syncHandler.GetData)
	api.Post("/users", syncHandler.SyncUsers)
	api.Post("/loans", syncHandler.SyncLoans)
	api.Post("/notifications", syncHandler.SyncNotifications)
	api.Delete("/users/:id", syncHandler.DeleteUser)

	api.Post("/budget", settingsHandler.UpdateBudget)
	api.Post("/rankProfit", settingsHandler.UpdateRankProfit)
}
