package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/service"
)

// InsightsHandler handles the secondary analytics HTTP requests
type InsightsHandler struct {
	insightsService *service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(insightsService *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetKPIs handles GET /api/v1/insights/kpis
func (h *InsightsHandler) GetKPIs(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.KPIs(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetVelocity handles GET /api/v1/insights/velocity
func (h *InsightsHandler) GetVelocity(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.Velocity(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetSeasonality handles GET /api/v1/insights/seasonality
func (h *InsightsHandler) GetSeasonality(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.Seasonality(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetAnomalies handles GET /api/v1/insights/anomalies
func (h *InsightsHandler) GetAnomalies(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.Anomalies(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetCorrelations handles GET /api/v1/insights/correlations
func (h *InsightsHandler) GetCorrelations(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.Correlations(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetBenchmark handles GET /api/v1/insights/benchmark
func (h *InsightsHandler) GetBenchmark(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.insightsService.Benchmark(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetAlerts handles GET /api/v1/alerts
// Accepts optional daily_threshold and frequency_threshold query params
func (h *InsightsHandler) GetAlerts(c echo.Context) error {
	cfg := domain.DefaultAlertConfig()

	if raw := c.QueryParam("daily_threshold"); raw != "" {
		threshold, err := decimal.NewFromString(raw)
		if err != nil || threshold.IsNegative() {
			return NewValidationError(c, "Invalid daily threshold",
				[]ValidationError{{Field: "daily_threshold", Message: "Must be a non-negative number"}})
		}
		cfg.DailyThreshold = threshold
	}
	if raw := c.QueryParam("frequency_threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 1 {
			return NewValidationError(c, "Invalid frequency threshold",
				[]ValidationError{{Field: "frequency_threshold", Message: "Must be a positive integer"}})
		}
		cfg.FrequencyThreshold = threshold
	}

	alerts, err := h.insightsService.Alerts(cfg)
	if err != nil {
		return respondError(c, err)
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}
