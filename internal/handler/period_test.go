package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/epargne-app/epargne-backend/internal/domain"
)

func queryContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestPeriodFromQuery_NoParams(t *testing.T) {
	filter, err := periodFromQuery(queryContext("/api/v1/summary/monthly"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filter.Period != domain.PeriodAll {
		t.Errorf("Expected period %q, got %q", domain.PeriodAll, filter.Period)
	}
}

func TestPeriodFromQuery_NamedPeriod(t *testing.T) {
	filter, err := periodFromQuery(queryContext("/api/v1/summary/monthly?period=last_month"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filter.Period != domain.PeriodLastMonth {
		t.Errorf("Expected period %q, got %q", domain.PeriodLastMonth, filter.Period)
	}
}

func TestPeriodFromQuery_UnknownPeriod(t *testing.T) {
	_, err := periodFromQuery(queryContext("/api/v1/summary/monthly?period=quarterly"))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriodFromQuery_DatesImplyCustom(t *testing.T) {
	filter, err := periodFromQuery(queryContext("/api/v1/summary/monthly?start=2024-01-01&end=2024-03-31"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filter.Period != domain.PeriodCustom {
		t.Errorf("Expected period %q, got %q", domain.PeriodCustom, filter.Period)
	}
	if filter.Start.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("Unexpected start date %v", filter.Start)
	}
	if filter.End.Format("2006-01-02") != "2024-03-31" {
		t.Errorf("Unexpected end date %v", filter.End)
	}
}

func TestPeriodFromQuery_BadDateFormat(t *testing.T) {
	_, err := periodFromQuery(queryContext("/api/v1/summary/monthly?start=01/01/2024&end=2024-03-31"))
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestPeriodFromQuery_InvertedRange(t *testing.T) {
	_, err := periodFromQuery(queryContext("/api/v1/summary/monthly?start=2024-03-31&end=2024-01-01"))
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestPeriodFromQuery_CustomWithoutDates(t *testing.T) {
	_, err := periodFromQuery(queryContext("/api/v1/summary/monthly?period=custom"))
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}
