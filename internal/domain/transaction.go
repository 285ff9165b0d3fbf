package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Transaction is a single ledger entry. The amount sign carries the
// direction: positive is income, negative is an expense. Derived fields
// (Category and the calendar columns) are pure functions of Date and
// Description and can always be recomputed from them.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	MonthName   string          `json:"monthName"`
	Weekday     time.Weekday    `json:"weekday"`
	ISOWeek     int             `json:"isoWeek"`
	Quarter     int             `json:"quarter"`
	Type        TransactionType `json:"type"`
}

// IsExpense reports whether the amount is strictly negative.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the amount is strictly positive.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// AbsAmount returns the magnitude of the transaction amount.
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// Ledger is a date-ordered collection of transactions.
type Ledger []Transaction

// Expenses returns the subset with strictly negative amounts.
// Zero-amount transactions belong to neither partition: they stay in the
// ledger and are counted, but contribute to neither sum.
func (l Ledger) Expenses() Ledger {
	out := make(Ledger, 0, len(l))
	for _, t := range l {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

// Incomes returns the subset with strictly positive amounts.
func (l Ledger) Incomes() Ledger {
	out := make(Ledger, 0, len(l))
	for _, t := range l {
		if t.IsIncome() {
			out = append(out, t)
		}
	}
	return out
}

// MaxDate returns the latest transaction date, or the zero time for an
// empty ledger. Relative period windows are anchored here, not on the
// wall clock, so a static dataset always filters the same way.
func (l Ledger) MaxDate() time.Time {
	var max time.Time
	for _, t := range l {
		if t.Date.After(max) {
			max = t.Date
		}
	}
	return max
}

// MinDate returns the earliest transaction date, or the zero time for an
// empty ledger.
func (l Ledger) MinDate() time.Time {
	if len(l) == 0 {
		return time.Time{}
	}
	min := l[0].Date
	for _, t := range l[1:] {
		if t.Date.Before(min) {
			min = t.Date
		}
	}
	return min
}

// SortByDate orders the ledger by ascending date in place.
func (l Ledger) SortByDate() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Date.Before(l[j].Date)
	})
}

// LedgerStats summarizes the ledger for display.
type LedgerStats struct {
	Transactions int       `json:"transactions"`
	Expenses     int       `json:"expenses"`
	Incomes      int       `json:"incomes"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

// Stats computes row counts and the covered date span.
func (l Ledger) Stats() LedgerStats {
	stats := LedgerStats{Transactions: len(l)}
	for _, t := range l {
		switch {
		case t.IsExpense():
			stats.Expenses++
		case t.IsIncome():
			stats.Incomes++
		}
	}
	if len(l) > 0 {
		stats.From = l.MinDate()
		stats.To = l.MaxDate()
	}
	return stats
}
