package testutil

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/generator"
	"github.com/epargne-app/epargne-backend/internal/websocket"
)

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// Publish records the event
func (m *MockPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Published returns a copy of the recorded events
func (m *MockPublisher) Published() []websocket.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]websocket.Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// MockLedgerRepository is an in-memory implementation of
// domain.LedgerRepository.
type MockLedgerRepository struct {
	Ledger    domain.Ledger
	ReplaceFn func(ledger domain.Ledger) error
	Replaced  int
}

// NewMockLedgerRepository creates a new MockLedgerRepository seeded with
// the given transactions.
func NewMockLedgerRepository(ledger domain.Ledger) *MockLedgerRepository {
	return &MockLedgerRepository{Ledger: ledger}
}

// Snapshot returns the current ledger
func (m *MockLedgerRepository) Snapshot() domain.Ledger {
	out := make(domain.Ledger, len(m.Ledger))
	copy(out, m.Ledger)
	return out
}

// Replace swaps the ledger
func (m *MockLedgerRepository) Replace(ledger domain.Ledger) error {
	if m.ReplaceFn != nil {
		if err := m.ReplaceFn(ledger); err != nil {
			return err
		}
	}
	m.Ledger = ledger
	m.Replaced++
	return nil
}

// Tx builds an enriched transaction for fixtures.
func Tx(date string, description string, amount float64) domain.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return generator.Enrich(domain.Transaction{
		ID:          uuid.New(),
		Date:        d,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
	})
}

// ThreeMonthLedger is a deterministic fixture: salaries of 3000 in
// January through March 2024 against expenses of 2000, 3500 and 2500,
// giving balances of +1000, -500 and +500.
func ThreeMonthLedger() domain.Ledger {
	ledger := domain.Ledger{
		Tx("2024-01-28", "VIREMENT SALAIRE ENTREPRISE", 3000),
		Tx("2024-02-28", "VIREMENT SALAIRE ENTREPRISE", 3000),
		Tx("2024-03-28", "VIREMENT SALAIRE ENTREPRISE", 3000),
		Tx("2024-01-05", "NEXITY LOYER", -1200),
		Tx("2024-01-12", "CARREFOUR CITY PARIS", -500),
		Tx("2024-01-20", "BISTROT PARISIEN", -300),
		Tx("2024-02-05", "NEXITY LOYER", -1200),
		Tx("2024-02-10", "CARREFOUR CITY LYON", -1100),
		Tx("2024-02-14", "FNAC", -700),
		Tx("2024-02-22", "RESTO ASIAT", -500),
		Tx("2024-03-05", "NEXITY LOYER", -1200),
		Tx("2024-03-09", "CARREFOUR CITY", -600),
		Tx("2024-03-16", "CINEMA GAUMONT", -400),
		Tx("2024-03-23", "UBER", -300),
	}
	ledger.SortByDate()
	return ledger
}

// GeneratedLedger builds a seeded synthetic ledger spanning the given
// dates, for tests that need realistic volume.
func GeneratedLedger(seed int64, n int, start, end string) domain.Ledger {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		panic(err)
	}
	ledger, err := generator.NewWithSeed(seed).Generate(n, s, e)
	if err != nil {
		panic(err)
	}
	return ledger
}
