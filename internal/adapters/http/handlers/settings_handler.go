package handlers

import (
	"github.com/ngondo96v1/NDV26V/internal/core/services"
	"github.com/ngondo96v1/NDV26V/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles the global settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// BudgetRequest represents the budget update body
type BudgetRequest struct {
	Budget *float64 `json:"budget"`
}

// RankProfitRequest represents the rank profit update body
type RankProfitRequest struct {
	RankProfit *float64 `json:"rankProfit"`
}

// UpdateBudget handles setting the global budget
// @Summary Set budget
// @Description Sets the budget of the settings singleton; rank profit is left as is
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body BudgetRequest true "Budget"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /budget [post]
func (h *SettingsHandler) UpdateBudget(c *fiber.Ctx) error {
	var req BudgetRequest
	if err := c.BodyParser(&req); err != nil || req.Budget == nil {
		return response.BadRequest(c, msgInvalidData)
	}

	if err := h.settingsService.SetBudget(c.UserContext(), *req.Budget); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}

// UpdateRankProfit handles setting the accumulated rank profit
// @Summary Set rank profit
// @Description Sets the rank profit of the settings singleton; budget is left as is
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body RankProfitRequest true "Rank profit"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /rankProfit [post]
func (h *SettingsHandler) UpdateRankProfit(c *fiber.Ctx) error {
	var req RankProfitRequest
	if err := c.BodyParser(&req); err != nil || req.RankProfit == nil {
		return response.BadRequest(c, msgInvalidData)
	}

	if err := h.settingsService.SetRankProfit(c.UserContext(), *req.RankProfit); err != nil {
		return fail(c, err)
	}

	return response.OK(c)
}
