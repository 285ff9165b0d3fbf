package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/util"
)

// Estimator produces point forecasts from a weekly spending series.
// Implementations may refuse a series by returning an error; callers
// fall back to the naive model.
type Estimator interface {
	Name() string
	Forecast(series []float64, periods int) ([]float64, error)
}

// TrendService resamples expenses into weekly and monthly series and
// predicts future weekly spending.
type TrendService struct {
	repo      domain.LedgerRepository
	estimator Estimator // optional, used for long series
}

// NewTrendService creates a new TrendService
func NewTrendService(repo domain.LedgerRepository, estimator Estimator) *TrendService {
	return &TrendService{repo: repo, estimator: estimator}
}

// Trends returns the weekly and monthly expense series plus the
// zero-filled month x category matrix for the filtered ledger.
func (s *TrendService) Trends(f domain.PeriodFilter) (domain.TrendSeries, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.TrendSeries{}, err
	}
	expenses := ledger.Expenses()

	return domain.TrendSeries{
		Weekly:            weeklyTotals(expenses),
		Monthly:           monthlyTotals(expenses),
		MonthlyByCategory: categoryMatrix(expenses),
	}, nil
}

// Forecast predicts absolute weekly spending for the next `periods`
// weeks from the full ledger. Fewer than ten weekly buckets is an
// unavailable (not error) outcome.
func (s *TrendService) Forecast(periods int) (domain.Forecast, error) {
	if periods < domain.MinForecastPeriods || periods > domain.MaxForecastPeriods {
		return domain.Forecast{}, fmt.Errorf("%w: periods must be between %d and %d",
			domain.ErrInvalidInput, domain.MinForecastPeriods, domain.MaxForecastPeriods)
	}

	weekly := weeklyTotals(s.repo.Snapshot().Expenses())
	if len(weekly) < 10 {
		return domain.Forecast{
			Available: false,
			Reason:    "not enough history for a reliable prediction",
		}, nil
	}

	series := make([]float64, len(weekly))
	for i, p := range weekly {
		series[i] = p.Total.InexactFloat64()
	}

	recentAvg := mean(series[len(series)-8:])
	trend := (mean(series[len(series)-4:]) - mean(series[:4])) / float64(len(series))

	predictions := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		predictions[h-1] = recentAvg + trend*float64(h)
	}
	model := "naive"

	if s.estimator != nil && len(series) >= 20 {
		if enhanced, err := s.estimator.Forecast(series, periods); err == nil {
			predictions = enhanced
			model = s.estimator.Name()
		} else {
			log.Debug().Err(err).Str("estimator", s.estimator.Name()).
				Msg("Forecast estimator failed, keeping naive predictions")
		}
	}

	out := domain.Forecast{
		Available:     true,
		WeeklyAverage: decimal.NewFromFloat(recentAvg).Round(2),
		Trend:         domain.TrendFalling,
		Confidence:    "moderate",
		Model:         model,
	}
	if trend > 0 {
		out.Trend = domain.TrendRising
	}
	if len(series) >= 20 {
		out.Confidence = "high"
	}
	out.Predictions = make([]decimal.Decimal, periods)
	for i, p := range predictions {
		if p < 0 {
			p = 0
		}
		out.Predictions[i] = decimal.NewFromFloat(p).Round(2)
	}
	return out, nil
}

// weeklyTotals buckets absolute expense amounts by ISO week (keyed by
// its Monday), zero-filling gaps so the series is contiguous.
func weeklyTotals(expenses domain.Ledger) []domain.TrendPoint {
	return bucketTotals(expenses, util.WeekStart, func(t time.Time) time.Time {
		return t.AddDate(0, 0, 7)
	})
}

// monthlyTotals buckets absolute expense amounts by calendar month,
// zero-filling gaps.
func monthlyTotals(expenses domain.Ledger) []domain.TrendPoint {
	return bucketTotals(expenses, util.MonthStart, func(t time.Time) time.Time {
		return t.AddDate(0, 1, 0)
	})
}

func bucketTotals(expenses domain.Ledger, bucketOf func(time.Time) time.Time, next func(time.Time) time.Time) []domain.TrendPoint {
	if len(expenses) == 0 {
		return nil
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, tx := range expenses {
		key := bucketOf(tx.Date)
		totals[key] = totals[key].Add(tx.AbsAmount())
	}

	first := bucketOf(expenses.MinDate())
	last := bucketOf(expenses.MaxDate())

	var out []domain.TrendPoint
	for b := first; !b.After(last); b = next(b) {
		out = append(out, domain.TrendPoint{BucketStart: b, Total: totals[b]})
	}
	return out
}

// categoryMatrix builds the months x categories table of absolute
// expense totals, zero-filled in both dimensions.
func categoryMatrix(expenses domain.Ledger) domain.CategoryMatrix {
	if len(expenses) == 0 {
		return domain.CategoryMatrix{}
	}

	type cell struct {
		month    string
		category domain.Category
	}
	totals := make(map[cell]decimal.Decimal)
	monthSet := make(map[string]struct{})
	categorySet := make(map[domain.Category]struct{})
	for _, tx := range expenses {
		month := fmt.Sprintf("%04d-%02d", tx.Year, int(tx.Month))
		monthSet[month] = struct{}{}
		categorySet[tx.Category] = struct{}{}
		key := cell{month: month, category: tx.Category}
		totals[key] = totals[key].Add(tx.AbsAmount())
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	categories := make([]domain.Category, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	values := make([][]decimal.Decimal, len(months))
	for i, month := range months {
		values[i] = make([]decimal.Decimal, len(categories))
		for j, category := range categories {
			values[i][j] = totals[cell{month: month, category: category}]
		}
	}
	return domain.CategoryMatrix{Months: months, Categories: categories, Values: values}
}
