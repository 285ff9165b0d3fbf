package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/epargne-app/epargne-backend/internal/config"
	"github.com/epargne-app/epargne-backend/internal/generator"
	"github.com/epargne-app/epargne-backend/internal/handler"
	"github.com/epargne-app/epargne-backend/internal/middleware"
	"github.com/epargne-app/epargne-backend/internal/repository/csvfile"
	"github.com/epargne-app/epargne-backend/internal/service"
	"github.com/epargne-app/epargne-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the ledger store and websocket hub
	store := csvfile.NewLedgerStore(cfg.LedgerFile, generator.EnrichAll)
	hub := websocket.NewHub()

	// Initialize services
	ledgerService := service.NewLedgerService(
		store,
		generator.New(),
		hub,
		cfg.GeneratorTransactions,
		cfg.GeneratorStart,
		cfg.GeneratorEnd,
	)
	analysisService := service.NewAnalysisService(store)
	trendService := service.NewTrendService(store, service.HoltEstimator{})
	savingsService := service.NewSavingsService(store)
	healthService := service.NewHealthService(store)
	insightsService := service.NewInsightsService(store)

	// Load the ledger, generating a fresh one when needed
	if err := ledgerService.Bootstrap(store); err != nil {
		log.Fatal().Err(err).Str("file", cfg.LedgerFile).Msg("Failed to bootstrap ledger")
	}
	stats := ledgerService.Stats()
	log.Info().
		Int("transactions", stats.Transactions).
		Str("file", cfg.LedgerFile).
		Msg("Ledger ready")

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	trendHandler := handler.NewTrendHandler(trendService)
	savingsHandler := handler.NewSavingsHandler(savingsService)
	healthScoreHandler := handler.NewHealthScoreHandler(healthService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Per-client rate limiting
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, ledgerHandler, analysisHandler, trendHandler, savingsHandler, healthScoreHandler, insightsHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
