package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/util"
)

// benchmarks are reference monthly amounts per category, loosely based
// on national household averages.
var benchmarks = []domain.CategoryAmount{
	{Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(400)},
	{Category: domain.CategoryRent, Amount: decimal.NewFromInt(800)},
	{Category: domain.CategoryTransport, Amount: decimal.NewFromInt(150)},
	{Category: domain.CategoryRestaurants, Amount: decimal.NewFromInt(200)},
	{Category: domain.CategoryShopping, Amount: decimal.NewFromInt(120)},
	{Category: domain.CategoryLeisure, Amount: decimal.NewFromInt(180)},
	{Category: domain.CategoryHealth, Amount: decimal.NewFromInt(80)},
	{Category: domain.CategorySubscriptions, Amount: decimal.NewFromInt(60)},
}

// InsightsService computes the secondary analytics: KPIs, weekday
// velocity, seasonality, anomaly detection, category correlations,
// benchmark comparison and smart alerts.
type InsightsService struct {
	repo domain.LedgerRepository
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(repo domain.LedgerRepository) *InsightsService {
	return &InsightsService{repo: repo}
}

// KPIs returns average weekly spending, its volatility and the savings
// rate for the filtered ledger.
func (s *InsightsService) KPIs(f domain.PeriodFilter) (domain.KPIReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.KPIReport{}, err
	}

	weekly := weeklyTotals(ledger.Expenses())
	if len(weekly) == 0 {
		return domain.KPIReport{
			Available:         false,
			Reason:            "no expenses in the selected period",
			AvgWeeklySpending: decimal.Zero,
		}, nil
	}

	series := make([]float64, len(weekly))
	weeklySum := decimal.Zero
	for i, p := range weekly {
		series[i] = p.Total.InexactFloat64()
		weeklySum = weeklySum.Add(p.Total)
	}

	report := domain.KPIReport{
		Available:         true,
		AvgWeeklySpending: weeklySum.Div(decimal.NewFromInt(int64(len(weekly)))).Round(2),
		WeeklyVolatility:  stdDev(series),
	}

	// Savings rate uses monthly averages over the same window.
	months := monthlySummaries(ledger)
	if len(months) > 0 {
		avgIncome, avgExpense := decimal.Zero, decimal.Zero
		for _, m := range months {
			avgIncome = avgIncome.Add(m.Income)
			avgExpense = avgExpense.Add(m.Expense)
		}
		n := decimal.NewFromInt(int64(len(months)))
		avgIncome = avgIncome.Div(n)
		avgExpense = avgExpense.Div(n)
		if avgIncome.IsPositive() {
			report.SavingsRate = round1(avgIncome.Sub(avgExpense).Div(avgIncome).InexactFloat64() * 100)
		}
	}
	return report, nil
}

// Velocity breaks expense activity down by weekday.
func (s *InsightsService) Velocity(f domain.PeriodFilter) (domain.VelocityReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.VelocityReport{}, err
	}
	expenses := ledger.Expenses()
	if len(expenses) == 0 {
		return domain.VelocityReport{
			Available: false,
			Reason:    "no expenses in the selected period",
		}, nil
	}

	counts := make(map[time.Weekday]int)
	totals := make(map[time.Weekday]decimal.Decimal)
	for _, tx := range expenses {
		counts[tx.Weekday]++
		totals[tx.Weekday] = totals[tx.Weekday].Add(tx.AbsAmount())
	}

	// Monday..Sunday ordering.
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	report := domain.VelocityReport{Available: true}
	grandTotal, weekendTotal := decimal.Zero, decimal.Zero
	peakCount := -1
	expensiveMean := decimal.NewFromInt(-1)
	for _, day := range order {
		count := counts[day]
		total := totals[day]
		stat := domain.WeekdayStat{Weekday: day, Count: count, Total: total, Mean: decimal.Zero}
		if count > 0 {
			stat.Mean = total.Div(decimal.NewFromInt(int64(count))).Round(2)
		}
		report.Days = append(report.Days, stat)

		grandTotal = grandTotal.Add(total)
		if util.IsWeekend(day) {
			weekendTotal = weekendTotal.Add(total)
		}
		if count > peakCount {
			peakCount = count
			report.PeakDay = day
		}
		if stat.Mean.GreaterThan(expensiveMean) {
			expensiveMean = stat.Mean
			report.MostExpensiveDay = day
		}
	}
	if grandTotal.IsPositive() {
		report.WeekendShare = round1(weekendTotal.Div(grandTotal).InexactFloat64() * 100)
	}
	return report, nil
}

// Seasonality folds spending onto the calendar year and classifies how
// variable it is.
func (s *InsightsService) Seasonality(f domain.PeriodFilter) (domain.SeasonalityReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.SeasonalityReport{}, err
	}
	expenses := ledger.Expenses()
	if len(expenses) == 0 {
		return domain.SeasonalityReport{
			Available: false,
			Reason:    "no expenses in the selected period",
		}, nil
	}

	monthTotals := make(map[time.Month]decimal.Decimal)
	quarterTotals := make(map[int]decimal.Decimal)
	for _, tx := range expenses {
		monthTotals[tx.Month] = monthTotals[tx.Month].Add(tx.AbsAmount())
		quarterTotals[tx.Quarter] = quarterTotals[tx.Quarter].Add(tx.AbsAmount())
	}

	report := domain.SeasonalityReport{Available: true}
	var series []float64
	peak, low := decimal.NewFromInt(-1), decimal.Decimal{}
	for m := time.January; m <= time.December; m++ {
		total, ok := monthTotals[m]
		if !ok {
			continue
		}
		report.Months = append(report.Months, domain.MonthTotal{Month: m, Total: total})
		series = append(series, total.InexactFloat64())
		if total.GreaterThan(peak) {
			peak = total
			report.PeakMonth = m
		}
		if report.LowMonth == 0 || total.LessThan(low) {
			low = total
			report.LowMonth = m
		}
	}
	for q := 1; q <= 4; q++ {
		if total, ok := quarterTotals[q]; ok {
			report.Quarters = append(report.Quarters, domain.QuarterTotal{Quarter: q, Total: total})
		}
	}

	if m := mean(series); m > 0 {
		report.Volatility = round1(stdDev(series) / m * 100)
	}
	switch {
	case report.Volatility < 20:
		report.Classification = "regular"
	case report.Volatility < 40:
		report.Classification = "variable"
	default:
		report.Classification = "erratic"
	}
	return report, nil
}

// Anomalies flags days whose total spending falls outside the IQR
// fences. Fewer than eight distinct spending days is an unavailable
// outcome.
func (s *InsightsService) Anomalies(f domain.PeriodFilter) (domain.AnomalyReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.AnomalyReport{}, err
	}

	daily := dailyExpenseTotals(ledger.Expenses())
	if len(daily) <= 7 {
		return domain.AnomalyReport{
			Available: false,
			Reason:    "not enough spending days for anomaly detection",
			Days:      len(daily),
		}, nil
	}

	series := make([]float64, len(daily))
	for i, d := range daily {
		series[i] = d.Total.InexactFloat64()
	}
	q1 := quantile(series, 0.25)
	q3 := quantile(series, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	report := domain.AnomalyReport{
		Available:  true,
		LowerBound: lower,
		UpperBound: upper,
		Days:       len(daily),
	}
	for i, d := range daily {
		if series[i] < lower || series[i] > upper {
			report.Anomalies = append(report.Anomalies, d)
		}
	}
	report.Rate = round1(float64(len(report.Anomalies)) / float64(len(daily)) * 100)
	return report, nil
}

// Correlations builds the Pearson matrix of daily per-category spending.
// It needs at least three categories to say anything useful.
func (s *InsightsService) Correlations(f domain.PeriodFilter) (domain.CorrelationReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.CorrelationReport{}, err
	}
	expenses := ledger.Expenses()

	type cell struct {
		day      time.Time
		category domain.Category
	}
	totals := make(map[cell]float64)
	daySet := make(map[time.Time]struct{})
	categorySet := make(map[domain.Category]struct{})
	for _, tx := range expenses {
		day := time.Date(tx.Date.Year(), tx.Date.Month(), tx.Date.Day(), 0, 0, 0, 0, time.UTC)
		daySet[day] = struct{}{}
		categorySet[tx.Category] = struct{}{}
		totals[cell{day: day, category: tx.Category}] += tx.AbsAmount().InexactFloat64()
	}

	if len(categorySet) < 3 {
		return domain.CorrelationReport{
			Available: false,
			Reason:    "not enough categories for correlation analysis",
		}, nil
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	categories := make([]domain.Category, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	// Zero-filled day x category series.
	series := make([][]float64, len(categories))
	for i, category := range categories {
		series[i] = make([]float64, len(days))
		for j, day := range days {
			series[i][j] = totals[cell{day: day, category: category}]
		}
	}

	report := domain.CorrelationReport{Available: true, Categories: categories}
	report.Matrix = make([][]float64, len(categories))
	for i := range categories {
		report.Matrix[i] = make([]float64, len(categories))
		for j := range categories {
			if i == j {
				report.Matrix[i][j] = 1
				continue
			}
			report.Matrix[i][j] = pearson(series[i], series[j])
		}
	}
	for i := 0; i < len(categories); i++ {
		for j := i + 1; j < len(categories); j++ {
			if r := report.Matrix[i][j]; math.Abs(r) > 0.5 {
				report.StrongPairs = append(report.StrongPairs, domain.CorrelationPair{
					A:           categories[i],
					B:           categories[j],
					Coefficient: r,
				})
			}
		}
	}
	return report, nil
}

// Benchmark compares per-category totals against the reference table and
// classifies the overall profile by mean absolute gap.
func (s *InsightsService) Benchmark(f domain.PeriodFilter) (domain.BenchmarkReport, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.BenchmarkReport{}, err
	}

	totals := make(map[domain.Category]decimal.Decimal)
	for _, tx := range ledger.Expenses() {
		totals[tx.Category] = totals[tx.Category].Add(tx.AbsAmount())
	}

	report := domain.BenchmarkReport{}
	var gaps []float64
	for _, ref := range benchmarks {
		actual, ok := totals[ref.Category]
		if !ok {
			continue
		}
		gap := actual.Sub(ref.Amount).Div(ref.Amount).InexactFloat64() * 100
		gaps = append(gaps, math.Abs(gap))
		report.Rows = append(report.Rows, domain.BenchmarkRow{
			Category:   ref.Category,
			Actual:     actual,
			Benchmark:  ref.Amount,
			GapPercent: round1(gap),
		})
	}
	if len(report.Rows) == 0 {
		report.Reason = "no benchmarked categories in the selected period"
		return report, nil
	}

	report.Available = true
	report.MeanAbsoluteGap = round1(mean(gaps))
	switch {
	case report.MeanAbsoluteGap < 20:
		report.Profile = "balanced"
	case report.MeanAbsoluteGap < 40:
		report.Profile = "atypical"
	default:
		report.Profile = "specific"
	}
	return report, nil
}

// Alerts inspects the trailing seven days of the ledger and the current
// month's balance for actionable conditions. At most five alerts are
// returned, errors first.
func (s *InsightsService) Alerts(cfg domain.AlertConfig) ([]domain.Alert, error) {
	ledger := s.repo.Snapshot()
	expenses := ledger.Expenses()
	if len(expenses) == 0 {
		return nil, nil
	}

	cutoff := ledger.MaxDate().AddDate(0, 0, -7)
	var recent domain.Ledger
	for _, tx := range expenses {
		if !tx.Date.Before(cutoff) {
			recent = append(recent, tx)
		}
	}

	var alerts []domain.Alert

	// Exceptional one-day spend against the historical daily average.
	daily := dailyExpenseTotals(expenses)
	historical := make([]float64, len(daily))
	for i, d := range daily {
		historical[i] = d.Total.InexactFloat64()
	}
	historicalAvg := mean(historical)
	recentDaily := dailyExpenseTotals(recent)
	maxRecent := decimal.Zero
	for _, d := range recentDaily {
		if d.Total.GreaterThan(maxRecent) {
			maxRecent = d.Total
		}
	}
	exceptional := maxRecent.GreaterThan(decimal.NewFromFloat(historicalAvg * 2)) &&
		maxRecent.GreaterThanOrEqual(cfg.DailyThreshold)
	if exceptional {
		alerts = append(alerts, domain.Alert{
			Level:   domain.AlertWarning,
			Title:   "Exceptional spending detected",
			Message: fmt.Sprintf("One-day spend of %s (historical average %.0f)", maxRecent.StringFixed(0), historicalAvg),
			Action:  "Review your latest transactions",
		})
	}

	// High category frequency inside the recent window.
	frequency := make(map[domain.Category]int)
	for _, tx := range recent {
		frequency[tx.Category]++
	}
	frequentCategories := make([]domain.Category, 0, len(frequency))
	for category, count := range frequency {
		if count > cfg.FrequencyThreshold {
			frequentCategories = append(frequentCategories, category)
		}
	}
	sort.Slice(frequentCategories, func(i, j int) bool { return frequentCategories[i] < frequentCategories[j] })
	for _, category := range frequentCategories {
		alerts = append(alerts, domain.Alert{
			Level:   domain.AlertWarning,
			Title:   fmt.Sprintf("High frequency in %s", category),
			Message: fmt.Sprintf("%d transactions over the last 7 days", frequency[category]),
			Action:  "Keep an eye on this category",
		})
	}

	// Current-month deficit.
	months := monthlySummaries(ledger)
	if len(months) > 0 {
		current := months[len(months)-1]
		if current.Balance.IsNegative() {
			alerts = append(alerts, domain.Alert{
				Level:   domain.AlertError,
				Title:   "Monthly budget exceeded",
				Message: fmt.Sprintf("Deficit of %s this month", current.Balance.Abs().StringFixed(0)),
				Action:  "Cut back on non-essential spending",
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alertRank(alerts[i].Level) < alertRank(alerts[j].Level)
	})
	if len(alerts) > 5 {
		alerts = alerts[:5]
	}
	return alerts, nil
}

func alertRank(level domain.AlertLevel) int {
	switch level {
	case domain.AlertError:
		return 0
	case domain.AlertWarning:
		return 1
	default:
		return 2
	}
}

// dailyExpenseTotals sums absolute expenses per calendar day, ascending.
func dailyExpenseTotals(expenses domain.Ledger) []domain.DailyAnomaly {
	totals := make(map[time.Time]decimal.Decimal)
	for _, tx := range expenses {
		day := time.Date(tx.Date.Year(), tx.Date.Month(), tx.Date.Day(), 0, 0, 0, 0, time.UTC)
		totals[day] = totals[day].Add(tx.AbsAmount())
	}

	out := make([]domain.DailyAnomaly, 0, len(totals))
	for day, total := range totals {
		out = append(out, domain.DailyAnomaly{Date: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
