package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/service"
)

// SavingsHandler handles savings-related HTTP requests
type SavingsHandler struct {
	savingsService *service.SavingsService
}

// NewSavingsHandler creates a new SavingsHandler
func NewSavingsHandler(savingsService *service.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// GetOpportunities handles GET /api/v1/savings/opportunities
func (h *SavingsHandler) GetOpportunities(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	opportunities, err := h.savingsService.Opportunities(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, opportunities)
}

// GetGoalProgress handles GET /api/v1/savings/goal
// Requires a target query param between 0 and 2000
func (h *SavingsHandler) GetGoalProgress(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	raw := c.QueryParam("target")
	if raw == "" {
		return NewValidationError(c, "Missing savings target",
			[]ValidationError{{Field: "target", Message: "Required"}})
	}
	target, err := decimal.NewFromString(raw)
	if err != nil {
		return NewValidationError(c, "Invalid target format",
			[]ValidationError{{Field: "target", Message: "Must be a valid number"}})
	}

	progress, err := h.savingsService.GoalProgress(filter, target)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}
