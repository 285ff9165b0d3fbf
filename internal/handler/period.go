package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/epargne-app/epargne-backend/internal/domain"
)

const queryDateLayout = "2006-01-02"

// periodFromQuery builds a period filter from the `period`, `start` and
// `end` query parameters. No parameters means the whole ledger; start
// and end imply a custom period.
func periodFromQuery(c echo.Context) (domain.PeriodFilter, error) {
	periodParam := c.QueryParam("period")
	startParam := c.QueryParam("start")
	endParam := c.QueryParam("end")

	if periodParam == "" {
		if startParam == "" && endParam == "" {
			return domain.FilterAll, nil
		}
		periodParam = string(domain.PeriodCustom)
	}

	period, err := domain.ParsePeriod(periodParam)
	if err != nil {
		return domain.PeriodFilter{}, err
	}
	if period != domain.PeriodCustom {
		return domain.PeriodFilter{Period: period}, nil
	}

	start, err := time.Parse(queryDateLayout, startParam)
	if err != nil {
		return domain.PeriodFilter{}, domain.ErrInvalidDateRange
	}
	end, err := time.Parse(queryDateLayout, endParam)
	if err != nil {
		return domain.PeriodFilter{}, domain.ErrInvalidDateRange
	}
	return domain.NewCustomFilter(start, end)
}
