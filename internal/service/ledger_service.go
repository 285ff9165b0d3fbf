package service

import (
	"errors"
	"io/fs"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/generator"
	"github.com/epargne-app/epargne-backend/internal/websocket"
)

// LedgerLoader loads the persisted ledger into its repository.
type LedgerLoader interface {
	Load() error
}

// LedgerService owns the ledger lifecycle: startup recovery,
// regeneration and read access.
type LedgerService struct {
	repo      domain.LedgerRepository
	gen       *generator.Generator
	publisher websocket.EventPublisher

	transactionCount int
	start, end       time.Time
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	repo domain.LedgerRepository,
	gen *generator.Generator,
	publisher websocket.EventPublisher,
	transactionCount int,
	start, end time.Time,
) *LedgerService {
	return &LedgerService{
		repo:             repo,
		gen:              gen,
		publisher:        publisher,
		transactionCount: transactionCount,
		start:            start,
		end:              end,
	}
}

// Bootstrap loads the persisted ledger, generating a fresh one when the
// file is missing or unreadable. It never fails on bad data, only on
// unrecoverable I/O or generation errors.
func (s *LedgerService) Bootstrap(loader LedgerLoader) error {
	err := loader.Load()
	if err == nil {
		s.publisher.Publish(websocket.LedgerLoaded(s.Stats()))
		return nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Msg("No ledger file found, generating a fresh ledger")
	case errors.Is(err, domain.ErrLedgerFileCorrupt):
		log.Warn().Err(err).Msg("Ledger file unreadable, regenerating")
	default:
		return err
	}

	_, err = s.Regenerate()
	return err
}

// Regenerate builds a new synthetic ledger over the configured range,
// replaces the snapshot (persisting it), and notifies listeners.
func (s *LedgerService) Regenerate() (domain.LedgerStats, error) {
	ledger, err := s.gen.Generate(s.transactionCount, s.start, s.end)
	if err != nil {
		return domain.LedgerStats{}, err
	}
	if err := s.repo.Replace(ledger); err != nil {
		return domain.LedgerStats{}, err
	}

	stats := ledger.Stats()
	s.publisher.Publish(websocket.LedgerReplaced(stats))
	return stats, nil
}

// Stats summarizes the current ledger.
func (s *LedgerService) Stats() domain.LedgerStats {
	return s.repo.Snapshot().Stats()
}

// Transactions returns the filtered ledger rows, oldest first.
func (s *LedgerService) Transactions(f domain.PeriodFilter) (domain.Ledger, error) {
	return s.repo.Snapshot().Filter(f)
}
