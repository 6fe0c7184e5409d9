package handlers

import (
	"github.com/ngondo96v1/NDV26V/internal/core/domain"
	"github.com/ngondo96v1/NDV26V/internal/core/services"
	"github.com/ngondo96v1/NDV26V/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SyncHandler handles the bulk pull/push endpoints
type SyncHandler struct {
	syncService *services.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// GetData handles the aggregate read
// @Summary Pull all data
// @Description Users, loans, the 200 newest notifications and the global settings in one object
// @Tags Sync
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Failure 500 {object} response.Response
// @Router /data [get]
func (h *SyncHandler) GetData(c *fiber.Ctx) error {
	snapshot, err := h.syncService.Snapshot(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(snapshot)
}

// SyncUsers handles bulk upsert of users
// @Summary Push users
// @Description Upserts every user by id, in array order. Earlier items stay saved if a later one fails.
// @Tags Sync
// @Accept json
// @Produce json
// @Param body body []domain.User true "Users"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /users [post]
func (h *SyncHandler) SyncUsers(c *fiber.Ctx) error {
	var users []domain.User
	if err := c.BodyParser(&users); err != nil || users == nil {
		return response.BadRequest(c, msgInvalidData)
	}

	if err := h.syncService.SyncUsers(c.UserContext(), users); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}

// SyncLoans handles bulk upsert of loans
// @Summary Push loans
// @Description Upserts every loan by id, in array order. The referenced user is not checked.
// @Tags Sync
// @Accept json
// @Produce json
// @Param body body []domain.Loan true "Loans"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /loans [post]
func (h *SyncHandler) SyncLoans(c *fiber.Ctx) error {
	var loans []domain.Loan
	if err := c.BodyParser(&loans); err != nil || loans == nil {
		return response.BadRequest(c, msgInvalidData)
	}

	if err := h.syncService.SyncLoans(c.UserContext(), loans); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}

// SyncNotifications handles bulk upsert of notifications
// @Summary Push notifications
// @Description Upserts every notification by id, in array order
// @Tags Sync
// @Accept json
// @Produce json
// @Param body body []domain.Notification true "Notifications"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /notifications [post]
func (h *SyncHandler) SyncNotifications(c *fiber.Ctx) error {
	var notifications []domain.Notification
	if err := c.BodyParser(&notifications); err != nil || notifications == nil {
		return response.BadRequest(c, msgInvalidData)
	}

	if err := h.syncService.SyncNotifications(c.UserContext(), notifications); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}

// DeleteUser handles deleting a user with its loans and notifications
// @Summary Delete user
// @Description Deletes the user and every loan and notification with that userId
// @Tags Sync
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /users/{id} [delete]
func (h *SyncHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.syncService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}
