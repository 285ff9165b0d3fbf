package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/epargne-app/epargne-backend/internal/service"
)

// AnalysisHandler handles summary-related HTTP requests
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// GetMonthlySummary handles GET /api/v1/summary/monthly
func (h *AnalysisHandler) GetMonthlySummary(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := h.analysisService.MonthlySummaries(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GetCategorySummary handles GET /api/v1/summary/categories
func (h *AnalysisHandler) GetCategorySummary(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := h.analysisService.CategorySummaries(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
