package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLedger_PartitionIsDisjointCover(t *testing.T) {
	l := Ledger{
		tx(day(2023, time.January, 1), -10),
		tx(day(2023, time.January, 2), 20),
		tx(day(2023, time.January, 3), 0),
		tx(day(2023, time.January, 4), -5),
	}

	expenses := l.Expenses()
	incomes := l.Incomes()

	if len(expenses) != 2 {
		t.Errorf("expenses = %d, want 2", len(expenses))
	}
	if len(incomes) != 1 {
		t.Errorf("incomes = %d, want 1", len(incomes))
	}
	// The zero-amount row belongs to neither partition but stays counted.
	if got := l.Stats().Transactions; got != 4 {
		t.Errorf("transaction count = %d, want 4", got)
	}
}

func TestLedger_MaxMinDate(t *testing.T) {
	l := Ledger{
		tx(day(2023, time.March, 5), -1),
		tx(day(2023, time.January, 1), -1),
		tx(day(2023, time.June, 30), -1),
	}
	if got := l.MaxDate(); !got.Equal(day(2023, time.June, 30)) {
		t.Errorf("MaxDate = %v", got)
	}
	if got := l.MinDate(); !got.Equal(day(2023, time.January, 1)) {
		t.Errorf("MinDate = %v", got)
	}

	var empty Ledger
	if !empty.MaxDate().IsZero() || !empty.MinDate().IsZero() {
		t.Error("empty ledger should report zero times")
	}
}

func TestLedger_SortByDateIsStable(t *testing.T) {
	a := tx(day(2023, time.January, 2), -1)
	a.Description = "first"
	b := tx(day(2023, time.January, 2), -2)
	b.Description = "second"
	l := Ledger{tx(day(2023, time.January, 3), -1), a, b}

	l.SortByDate()

	if !l[0].Date.Equal(day(2023, time.January, 2)) {
		t.Fatalf("not sorted: %v", l[0].Date)
	}
	if l[0].Description != "first" || l[1].Description != "second" {
		t.Error("equal-date rows reordered")
	}
}

func TestLedger_Stats(t *testing.T) {
	l := Ledger{
		tx(day(2023, time.February, 1), 3000),
		tx(day(2023, time.February, 10), -50),
		tx(day(2023, time.March, 1), -20),
	}
	stats := l.Stats()
	if stats.Transactions != 3 || stats.Expenses != 2 || stats.Incomes != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.From.Equal(day(2023, time.February, 1)) || !stats.To.Equal(day(2023, time.March, 1)) {
		t.Errorf("span = %v .. %v", stats.From, stats.To)
	}
}

func TestTransaction_AbsAmount(t *testing.T) {
	e := tx(day(2023, time.January, 1), -42.5)
	if !e.AbsAmount().Equal(decimal.NewFromFloat(42.5)) {
		t.Errorf("AbsAmount = %s", e.AbsAmount())
	}
}
