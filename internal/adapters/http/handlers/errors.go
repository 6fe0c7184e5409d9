package handlers

import (
	"errors"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"
	"github.com/ngondo96v1/NDV26V/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Client facing messages
const (
	msgInvalidData    = "Invalid data"
	msgInternalServer = "Internal Server Error"
)

// fail maps a service error onto the HTTP response. Store errors are logged
// with the route and answered with a generic 500.
func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return response.BadRequest(c, err.Error())
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method":     c.Method(),
		"route":      c.Route().Path,
		"request_id": c.Locals("requestid"),
	}).Error("❌ Request failed")

	return response.InternalServerError(c, msgInternalServer)
}
