package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
	ErrInvalidPeriod     = errors.New("unknown period")
	ErrEmptyLedger       = errors.New("ledger is empty")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrLedgerFileCorrupt = errors.New("ledger file is corrupt")
	ErrInternalError     = errors.New("internal error")
)

// Validation constants
const (
	MinSavingsTarget = 0
	MaxSavingsTarget = 2000

	MinForecastPeriods = 1
	MaxForecastPeriods = 12
)
