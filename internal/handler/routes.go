package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	ledgerHandler *LedgerHandler,
	analysisHandler *AnalysisHandler,
	trendHandler *TrendHandler,
	savingsHandler *SavingsHandler,
	healthScoreHandler *HealthScoreHandler,
	insightsHandler *InsightsHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Ledger routes
	ledger := api.Group("/ledger")
	ledger.GET("", ledgerHandler.GetStats)
	ledger.GET("/transactions", ledgerHandler.GetTransactions)
	ledger.POST("/regenerate", ledgerHandler.Regenerate)

	// Summary routes
	summary := api.Group("/summary")
	summary.GET("/monthly", analysisHandler.GetMonthlySummary)
	summary.GET("/categories", analysisHandler.GetCategorySummary)

	// Trend routes
	api.GET("/trends", trendHandler.GetTrends)
	api.GET("/forecast", trendHandler.GetForecast)

	// Savings routes
	savings := api.Group("/savings")
	savings.GET("/opportunities", savingsHandler.GetOpportunities)
	savings.GET("/goal", savingsHandler.GetGoalProgress)

	// Health score and weather routes
	api.GET("/health-score", healthScoreHandler.GetScore)
	api.GET("/weather", healthScoreHandler.GetWeather)

	// Insight routes
	insights := api.Group("/insights")
	insights.GET("/kpis", insightsHandler.GetKPIs)
	insights.GET("/velocity", insightsHandler.GetVelocity)
	insights.GET("/seasonality", insightsHandler.GetSeasonality)
	insights.GET("/anomalies", insightsHandler.GetAnomalies)
	insights.GET("/correlations", insightsHandler.GetCorrelations)
	insights.GET("/benchmark", insightsHandler.GetBenchmark)

	// Alert routes
	api.GET("/alerts", insightsHandler.GetAlerts)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.HandleWS)
}
