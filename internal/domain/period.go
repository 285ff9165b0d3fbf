package domain

import (
	"fmt"
	"time"
)

// Period names a relative date window. All relative windows are computed
// against the ledger's maximum date rather than "today".
type Period string

const (
	PeriodAll          Period = "all"
	PeriodCurrentMonth Period = "current_month"
	PeriodLastMonth    Period = "last_month"
	PeriodLast3Months  Period = "last_3months"
	PeriodLast6Months  Period = "last_6months"
	PeriodLast12Months Period = "last_12months"
	PeriodCurrentYear  Period = "current_year"
	PeriodLastYear     Period = "last_year"
	PeriodCustom       Period = "custom"
)

// ParsePeriod validates a period name from user input.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodAll, PeriodCurrentMonth, PeriodLastMonth, PeriodLast3Months,
		PeriodLast6Months, PeriodLast12Months, PeriodCurrentYear,
		PeriodLastYear, PeriodCustom:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// PeriodFilter restricts a ledger to a date window, either a named
// relative preset or an explicit inclusive custom range.
type PeriodFilter struct {
	Period Period    `json:"period"`
	Start  time.Time `json:"start,omitempty"`
	End    time.Time `json:"end,omitempty"`
}

// FilterAll matches every transaction.
var FilterAll = PeriodFilter{Period: PeriodAll}

// NewCustomFilter builds a custom filter, rejecting inverted ranges
// before any filtering happens.
func NewCustomFilter(start, end time.Time) (PeriodFilter, error) {
	if start.After(end) {
		return PeriodFilter{}, ErrInvalidDateRange
	}
	return PeriodFilter{Period: PeriodCustom, Start: start, End: end}, nil
}

// Validate rejects malformed filters. Custom filters with an inverted
// range are an input error, never silently swapped.
func (f PeriodFilter) Validate() error {
	if _, err := ParsePeriod(string(f.Period)); err != nil {
		return err
	}
	if f.Period == PeriodCustom && f.Start.After(f.End) {
		return ErrInvalidDateRange
	}
	return nil
}

// Filter returns the subset of the ledger inside the filter's window.
// The result may be empty; the only error cases are a malformed filter.
func (l Ledger) Filter(f PeriodFilter) (Ledger, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Period == PeriodAll {
		return l, nil
	}
	if len(l) == 0 {
		return Ledger{}, nil
	}

	var start, end time.Time
	anchor := l.MaxDate()

	switch f.Period {
	case PeriodCustom:
		start, end = dateOnly(f.Start), dateOnly(f.End)
	case PeriodCurrentMonth:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		end = anchor
	case PeriodLastMonth:
		firstOfCurrent := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		end = firstOfCurrent.AddDate(0, 0, -1)
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	case PeriodLast3Months:
		start, end = anchor.AddDate(0, 0, -90), anchor
	case PeriodLast6Months:
		start, end = anchor.AddDate(0, 0, -180), anchor
	case PeriodLast12Months:
		start, end = anchor.AddDate(0, 0, -365), anchor
	case PeriodCurrentYear:
		start = time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		end = anchor
	case PeriodLastYear:
		start = time.Date(anchor.Year()-1, time.January, 1, 0, 0, 0, 0, anchor.Location())
		end = time.Date(anchor.Year()-1, time.December, 31, 0, 0, 0, 0, anchor.Location())
	}

	out := make(Ledger, 0, len(l))
	for _, t := range l {
		d := dateOnly(t.Date)
		if d.Before(dateOnly(start)) || d.After(dateOnly(end)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
