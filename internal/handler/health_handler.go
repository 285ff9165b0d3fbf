package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/epargne-app/epargne-backend/internal/service"
)

// HealthScoreHandler handles health-score and weather HTTP requests
type HealthScoreHandler struct {
	healthService *service.HealthService
}

// NewHealthScoreHandler creates a new HealthScoreHandler
func NewHealthScoreHandler(healthService *service.HealthService) *HealthScoreHandler {
	return &HealthScoreHandler{healthService: healthService}
}

// GetScore handles GET /api/v1/health-score
func (h *HealthScoreHandler) GetScore(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	score, err := h.healthService.Score(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, score)
}

// GetWeather handles GET /api/v1/weather
func (h *HealthScoreHandler) GetWeather(c echo.Context) error {
	weather, err := h.healthService.Weather()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute financial weather")
		return NewInternalError(c, "Failed to compute financial weather")
	}
	return c.JSON(http.StatusOK, weather)
}
