package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/util"
)

// SavingsService surfaces where money could be saved: discretionary
// spending, recurring subscriptions, outlier purchases and the
// weekend/weekday split.
type SavingsService struct {
	repo domain.LedgerRepository
}

// NewSavingsService creates a new SavingsService
func NewSavingsService(repo domain.LedgerRepository) *SavingsService {
	return &SavingsService{repo: repo}
}

// Opportunities runs every savings heuristic over the filtered ledger.
func (s *SavingsService) Opportunities(f domain.PeriodFilter) (domain.SavingsOpportunities, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.SavingsOpportunities{}, err
	}
	expenses := ledger.Expenses()

	subs, subsTotal := subscriptions(expenses)
	return domain.SavingsOpportunities{
		Compressible:       compressibleSpending(expenses),
		Subscriptions:      subs,
		SubscriptionsTotal: subsTotal,
		Outliers:           outlierExpenses(expenses),
		WeekSplit:          weekendSplit(expenses),
	}, nil
}

// GoalProgress compares the 20%-reduction scenario against a monthly
// savings target. Targets outside [0, 2000] are rejected.
func (s *SavingsService) GoalProgress(f domain.PeriodFilter, target decimal.Decimal) (domain.GoalProgress, error) {
	min := decimal.NewFromInt(domain.MinSavingsTarget)
	max := decimal.NewFromInt(domain.MaxSavingsTarget)
	if target.LessThan(min) || target.GreaterThan(max) {
		return domain.GoalProgress{}, fmt.Errorf("%w: savings target must be between %s and %s",
			domain.ErrInvalidInput, min, max)
	}

	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.GoalProgress{}, err
	}

	projected := compressibleSpending(ledger.Expenses()).Reduction20
	progress := domain.GoalProgress{Target: target, Projected: projected}
	if target.IsPositive() {
		progress.Percent = round1(projected.Div(target).InexactFloat64() * 100)
	}
	return progress, nil
}

func compressibleSpending(expenses domain.Ledger) domain.CompressibleSpending {
	totals := make(map[domain.Category]decimal.Decimal)
	for _, tx := range expenses {
		if tx.Category.IsCompressible() {
			totals[tx.Category] = totals[tx.Category].Add(tx.AbsAmount())
		}
	}

	out := domain.CompressibleSpending{Total: decimal.Zero}
	for _, category := range domain.CompressibleCategories {
		total, ok := totals[category]
		if !ok {
			continue
		}
		out.Total = out.Total.Add(total)
		out.ByCategory = append(out.ByCategory, domain.CategoryAmount{Category: category, Amount: total})
	}
	out.Reduction20 = out.Total.Mul(decimal.NewFromFloat(0.2)).Round(2)
	out.Reduction30 = out.Total.Mul(decimal.NewFromFloat(0.3)).Round(2)
	return out
}

// subscriptions groups subscription-category expenses by description and
// keeps groups seen at least twice.
func subscriptions(expenses domain.Ledger) ([]domain.Subscription, decimal.Decimal) {
	type group struct {
		count int
		total decimal.Decimal
	}
	groups := make(map[string]*group)
	for _, tx := range expenses {
		if tx.Category != domain.CategorySubscriptions {
			continue
		}
		g, ok := groups[tx.Description]
		if !ok {
			g = &group{}
			groups[tx.Description] = g
		}
		g.count++
		g.total = g.total.Add(tx.AbsAmount())
	}

	var out []domain.Subscription
	monthlyTotal := decimal.Zero
	for description, g := range groups {
		if g.count < 2 {
			continue
		}
		mean := g.total.Div(decimal.NewFromInt(int64(g.count))).Round(2)
		monthlyTotal = monthlyTotal.Add(mean)
		out = append(out, domain.Subscription{
			Description: description,
			Occurrences: g.count,
			MeanAmount:  mean,
			Total:       g.total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, monthlyTotal
}

// outlierExpenses flags transactions above mean + 2 sigma within their
// category, for categories with more than five rows, keeping the ten
// most extreme.
func outlierExpenses(expenses domain.Ledger) []domain.OutlierExpense {
	byCategory := make(map[domain.Category]domain.Ledger)
	for _, tx := range expenses {
		byCategory[tx.Category] = append(byCategory[tx.Category], tx)
	}

	var out []domain.OutlierExpense
	for _, rows := range byCategory {
		if len(rows) <= 5 {
			continue
		}
		amounts := make([]float64, len(rows))
		for i, tx := range rows {
			amounts[i] = tx.AbsAmount().InexactFloat64()
		}
		threshold := mean(amounts) + 2*stdDev(amounts)
		thresholdDec := decimal.NewFromFloat(threshold).Round(2)
		for i, tx := range rows {
			if amounts[i] > threshold {
				out = append(out, domain.OutlierExpense{
					ID:          tx.ID,
					Date:        tx.Date,
					Description: tx.Description,
					Category:    tx.Category,
					Amount:      tx.Amount,
					Threshold:   thresholdDec,
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Amount.Abs().GreaterThan(out[j].Amount.Abs())
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func weekendSplit(expenses domain.Ledger) domain.WeekendSplit {
	split := domain.WeekendSplit{Weekend: decimal.Zero, Weekday: decimal.Zero}
	for _, tx := range expenses {
		if util.IsWeekend(tx.Weekday) {
			split.Weekend = split.Weekend.Add(tx.AbsAmount())
		} else {
			split.Weekday = split.Weekday.Add(tx.AbsAmount())
		}
	}
	total := split.Weekend.Add(split.Weekday)
	if total.IsPositive() {
		split.WeekendShare = round1(split.Weekend.Div(total).InexactFloat64() * 100)
	}
	return split
}
