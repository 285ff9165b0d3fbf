package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/epargne-app/epargne-backend/internal/service"
)

const defaultForecastPeriods = 4

// TrendHandler handles trend and forecast HTTP requests
type TrendHandler struct {
	trendService *service.TrendService
}

// NewTrendHandler creates a new TrendHandler
func NewTrendHandler(trendService *service.TrendService) *TrendHandler {
	return &TrendHandler{trendService: trendService}
}

// GetTrends handles GET /api/v1/trends
func (h *TrendHandler) GetTrends(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	trends, err := h.trendService.Trends(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, trends)
}

// GetForecast handles GET /api/v1/forecast
// Accepts an optional periods query param (1-12, default 4)
func (h *TrendHandler) GetForecast(c echo.Context) error {
	periods := defaultForecastPeriods
	if raw := c.QueryParam("periods"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid periods format",
				[]ValidationError{{Field: "periods", Message: "Must be a valid integer"}})
		}
		periods = parsed
	}

	forecast, err := h.trendService.Forecast(periods)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, forecast)
}
