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

func newTestSavingsHandler() *SavingsHandler {
	repo := testutil.NewMockLedgerRepository(testutil.ThreeMonthLedger())
	return NewSavingsHandler(service.NewSavingsService(repo))
}

func TestGetOpportunities_Success(t *testing.T) {
	e := echo.New()
	handler := newTestSavingsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/opportunities", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetOpportunities(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.SavingsOpportunities
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Compressible.Total.IsZero() {
		t.Error("Expected compressible spending on the fixture")
	}
	if response.Compressible.Reduction20.IsZero() {
		t.Error("Expected a 20% reduction estimate")
	}
}

func TestGetOpportunities_InvalidPeriod(t *testing.T) {
	e := echo.New()
	handler := newTestSavingsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/opportunities?period=daily", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetOpportunities(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetGoalProgress_Success(t *testing.T) {
	e := echo.New()
	handler := newTestSavingsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/goal?target=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetGoalProgress(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response domain.GoalProgress
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Target.String() != "500" {
		t.Errorf("Expected target 500, got %s", response.Target)
	}
	if response.Projected.IsZero() {
		t.Error("Expected a projected amount")
	}
}

func TestGetGoalProgress_MissingTarget(t *testing.T) {
	e := echo.New()
	handler := newTestSavingsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/goal", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetGoalProgress(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "target" {
		t.Errorf("Expected a target field error, got %+v", problem.Errors)
	}
}

func TestGetGoalProgress_InvalidTarget(t *testing.T) {
	e := echo.New()
	handler := newTestSavingsHandler()

	tests := []struct {
		name   string
		target string
	}{
		{"not a number", "lots"},
		{"negative", "-100"},
		{"above maximum", "2001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/goal?target="+tt.target, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.GetGoalProgress(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}
