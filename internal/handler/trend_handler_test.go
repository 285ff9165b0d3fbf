package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/service"
	"github.com/epargne-app/epargne-backend/internal/testutil"
)

func newTestTrendHandler(ledger domain.Ledger) *TrendHandler {
	repo := testutil.NewMockLedgerRepository(ledger)
	return NewTrendHandler(service.NewTrendService(repo, nil))
}

func TestGetTrends_Success(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.ThreeMonthLedger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTrends(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.TrendSeries
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Monthly) != 3 {
		t.Errorf("Expected 3 monthly buckets, got %d", len(response.Monthly))
	}
	if len(response.Weekly) == 0 {
		t.Error("Expected weekly buckets")
	}
	if len(response.MonthlyByCategory.Months) != 3 {
		t.Errorf("Expected 3 matrix months, got %d", len(response.MonthlyByCategory.Months))
	}
}

func TestGetTrends_InvalidPeriod(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.ThreeMonthLedger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends?period=hourly", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTrends(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetForecast_DefaultPeriods(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.GeneratedLedger(11, 300, "2024-01-01", "2024-10-31"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetForecast(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.Forecast
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Available {
		t.Fatalf("Expected available forecast, reason: %s", response.Reason)
	}
	if len(response.Predictions) != 4 {
		t.Errorf("Expected 4 predictions by default, got %d", len(response.Predictions))
	}
	if response.Model != "naive" {
		t.Errorf("Expected naive model, got %s", response.Model)
	}
}

func TestGetForecast_CustomPeriods(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.GeneratedLedger(11, 300, "2024-01-01", "2024-10-31"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?periods=8", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetForecast(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response domain.Forecast
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Predictions) != 8 {
		t.Errorf("Expected 8 predictions, got %d", len(response.Predictions))
	}
}

func TestGetForecast_InvalidPeriods(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.ThreeMonthLedger())

	tests := []struct {
		name    string
		periods string
	}{
		{"not a number", "soon"},
		{"zero", "0"},
		{"negative", "-2"},
		{"too large", "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?periods="+tt.periods, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.GetForecast(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Failed to unmarshal problem details: %v", err)
			}
			if problem.Type != ErrorTypeValidation {
				t.Errorf("Expected type %s, got %s", ErrorTypeValidation, problem.Type)
			}
		})
	}
}

func TestGetForecast_InsufficientHistory(t *testing.T) {
	e := echo.New()
	handler := newTestTrendHandler(testutil.ThreeMonthLedger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetForecast(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.Forecast
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Available {
		t.Error("Expected forecast to be unavailable on a short ledger")
	}
	if response.Reason == "" {
		t.Error("Expected a reason for the unavailable forecast")
	}
}
