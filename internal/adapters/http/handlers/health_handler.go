package handlers

import (
	"context"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	conn *config.Connection
	cfg  *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(conn *config.Connection, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		conn: conn,
		cfg:  cfg,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 NDV26V sync API is running",
		"mode":    h.cfg.AppMode,
		"store":   h.cfg.Store.Driver,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and store health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storeStatus := "healthy"
	if err := h.pingStore(c.UserContext()); err != nil {
		storeStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":   "healthy",
			"store": storeStatus,
		},
	})
}

func (h *HealthHandler) pingStore(ctx context.Context) error {
	store, err := h.conn.Store()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return store.Ping(ctx)
}

// DBStatus reports the store connection state
// @Summary Store connection status
// @Description Connection flag, last connection error and whether the connection string came from the environment
// @Tags Health
// @Produce json
// @Success 200 {object} config.ConnectionStatus
// @Router /db-status [get]
func (h *HealthHandler) DBStatus(c *fiber.Ctx) error {
	return c.JSON(h.conn.Status())
}
