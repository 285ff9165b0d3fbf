// Package csvfile persists the ledger as a single CSV file and serves
// an in-memory snapshot of it. The only mutation is a whole-ledger
// replace, so readers never see a partial update.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// enrichedHeader is the full on-disk column set. Files carrying only the
// first three columns are accepted and re-derived on load.
var enrichedHeader = []string{
	"date", "description", "amount",
	"category", "year", "month", "month_name", "weekday", "iso_week", "quarter", "type",
}

// EnrichFunc recomputes derived transaction fields, used when a loaded
// file lacks the category column.
type EnrichFunc func(domain.Ledger) domain.Ledger

// LedgerStore is a CSV-backed domain.LedgerRepository.
type LedgerStore struct {
	path   string
	enrich EnrichFunc

	mu     sync.RWMutex
	ledger domain.Ledger
}

var _ domain.LedgerRepository = (*LedgerStore)(nil)

// NewLedgerStore creates a store for the given file path. Call Load or
// Replace before serving snapshots.
func NewLedgerStore(path string, enrich EnrichFunc) *LedgerStore {
	return &LedgerStore{path: path, enrich: enrich}
}

// Load reads the CSV file into memory. A file without the category
// column is re-derived through the enrich function; a file that cannot
// be parsed yields ErrLedgerFileCorrupt so the caller can recover by
// regenerating.
func (s *LedgerStore) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerFileCorrupt, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: empty file", domain.ErrLedgerFileCorrupt)
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("%w: missing column %q", domain.ErrLedgerFileCorrupt, required)
		}
	}
	_, hasCategory := cols["category"]

	ledger := make(domain.Ledger, 0, len(records)-1)
	for line, record := range records[1:] {
		tx, err := parseRow(record, cols, hasCategory)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", domain.ErrLedgerFileCorrupt, line+2, err)
		}
		ledger = append(ledger, tx)
	}

	if !hasCategory {
		log.Info().Str("path", s.path).Msg("Ledger file lacks derived columns, re-deriving")
		ledger = s.enrich(ledger)
	} else {
		ledger.SortByDate()
	}

	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()

	log.Info().Str("path", s.path).Int("transactions", len(ledger)).Msg("Ledger loaded")
	return nil
}

// Snapshot returns a copy of the current ledger.
func (s *LedgerStore) Snapshot() domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.Ledger, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Replace persists the ledger to disk, overwriting the file, then swaps
// the in-memory snapshot. The swap happens only after a successful
// write so a failed save never loses the previous snapshot.
func (s *LedgerStore) Replace(ledger domain.Ledger) error {
	if err := s.save(ledger); err != nil {
		return err
	}

	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()

	log.Info().Str("path", s.path).Int("transactions", len(ledger)).Msg("Ledger replaced")
	return nil
}

func (s *LedgerStore) save(ledger domain.Ledger) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(enrichedHeader); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, tx := range ledger {
		record := []string{
			tx.Date.Format(dateLayout),
			tx.Description,
			tx.Amount.String(),
			string(tx.Category),
			strconv.Itoa(tx.Year),
			strconv.Itoa(int(tx.Month)),
			tx.MonthName,
			tx.Weekday.String(),
			strconv.Itoa(tx.ISOWeek),
			strconv.Itoa(tx.Quarter),
			string(tx.Type),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger file: %w", err)
	}
	return nil
}

func parseRow(record []string, cols map[string]int, hasCategory bool) (domain.Transaction, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	date, err := time.Parse(dateLayout, field("date"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bad date %q", field("date"))
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bad amount %q", field("amount"))
	}

	// IDs are not persisted; the file stays compatible with plain bank
	// exports, so rows get fresh identities on every load.
	tx := domain.Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: field("description"),
		Amount:      amount,
	}
	if !hasCategory {
		return tx, nil
	}

	tx.Category = domain.Category(field("category"))
	if tx.Year, err = strconv.Atoi(field("year")); err != nil {
		return domain.Transaction{}, fmt.Errorf("bad year %q", field("year"))
	}
	monthNum, err := strconv.Atoi(field("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return domain.Transaction{}, fmt.Errorf("bad month %q", field("month"))
	}
	tx.Month = time.Month(monthNum)
	tx.MonthName = field("month_name")
	weekday, err := parseWeekday(field("weekday"))
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.Weekday = weekday
	if tx.ISOWeek, err = strconv.Atoi(field("iso_week")); err != nil {
		return domain.Transaction{}, fmt.Errorf("bad iso_week %q", field("iso_week"))
	}
	if tx.Quarter, err = strconv.Atoi(field("quarter")); err != nil {
		return domain.Transaction{}, fmt.Errorf("bad quarter %q", field("quarter"))
	}
	tx.Type = domain.TransactionType(field("type"))
	return tx, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("bad weekday %q", s)
}
