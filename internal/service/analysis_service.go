package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
)

// AnalysisService computes the core ledger aggregates: monthly income,
// expense and balance rows, and per-category expense breakdowns.
type AnalysisService struct {
	repo domain.LedgerRepository
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(repo domain.LedgerRepository) *AnalysisService {
	return &AnalysisService{repo: repo}
}

type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) label() string {
	return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
}

func (k monthKey) before(other monthKey) bool {
	if k.year != other.year {
		return k.year < other.year
	}
	return k.month < other.month
}

// MonthlySummaries returns one row per (year, month) actually present in
// the filtered ledger, in chronological order. Months with no
// transactions produce no row.
func (s *AnalysisService) MonthlySummaries(f domain.PeriodFilter) ([]domain.MonthlySummary, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return nil, err
	}
	return monthlySummaries(ledger), nil
}

func monthlySummaries(ledger domain.Ledger) []domain.MonthlySummary {
	rows := make(map[monthKey]*domain.MonthlySummary)
	for _, tx := range ledger {
		key := monthKey{year: tx.Year, month: tx.Month}
		row, ok := rows[key]
		if !ok {
			row = &domain.MonthlySummary{
				Year:    key.year,
				Month:   key.month,
				Label:   key.label(),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			rows[key] = row
		}
		row.TransactionCount++
		if tx.IsIncome() {
			row.Income = row.Income.Add(tx.Amount)
		} else if tx.IsExpense() {
			row.Expense = row.Expense.Add(tx.AbsAmount())
		}
	}

	keys := make([]monthKey, 0, len(rows))
	for key := range rows {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	out := make([]domain.MonthlySummary, 0, len(keys))
	for _, key := range keys {
		row := rows[key]
		row.Balance = row.Income.Sub(row.Expense)
		out = append(out, *row)
	}
	return out
}

// CategorySummaries breaks the filtered expenses down by category,
// sorted by total descending. Percentages are of the period expense
// total, rounded to one decimal.
func (s *AnalysisService) CategorySummaries(f domain.PeriodFilter) ([]domain.CategorySummary, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		amounts []decimal.Decimal
	}
	buckets := make(map[domain.Category]*bucket)
	for _, tx := range ledger.Expenses() {
		b, ok := buckets[tx.Category]
		if !ok {
			b = &bucket{}
			buckets[tx.Category] = b
		}
		b.amounts = append(b.amounts, tx.AbsAmount())
	}

	grandTotal := decimal.Zero
	rows := make([]domain.CategorySummary, 0, len(buckets))
	for category, b := range buckets {
		total := sumDecimals(b.amounts)
		grandTotal = grandTotal.Add(total)
		rows = append(rows, domain.CategorySummary{
			Category: category,
			Count:    len(b.amounts),
			Total:    total,
			Mean:     total.Div(decimal.NewFromInt(int64(len(b.amounts)))).Round(2),
			StdDev:   stdDev(decimalsToFloats(b.amounts)),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	if grandTotal.IsPositive() {
		for i := range rows {
			share := rows[i].Total.Div(grandTotal).InexactFloat64() * 100
			rows[i].Percentage = round1(share)
		}
	}
	return rows, nil
}
