package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/service"
)

// LedgerHandler handles ledger-related HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// TransactionResponse represents a single ledger row in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Weekday     string `json:"weekday"`
}

// LedgerStatsResponse represents the ledger summary for the sidebar
type LedgerStatsResponse struct {
	Transactions int    `json:"transactions"`
	Expenses     int    `json:"expenses"`
	Incomes      int    `json:"incomes"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
}

func toLedgerStatsResponse(stats domain.LedgerStats) LedgerStatsResponse {
	out := LedgerStatsResponse{
		Transactions: stats.Transactions,
		Expenses:     stats.Expenses,
		Incomes:      stats.Incomes,
	}
	if !stats.From.IsZero() {
		out.From = stats.From.Format("2006-01-02")
		out.To = stats.To.Format("2006-01-02")
	}
	return out
}

// GetStats handles GET /api/v1/ledger
func (h *LedgerHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, toLedgerStatsResponse(h.ledgerService.Stats()))
}

// GetTransactions handles GET /api/v1/ledger/transactions
func (h *LedgerHandler) GetTransactions(c echo.Context) error {
	filter, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	ledger, err := h.ledgerService.Transactions(filter)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]TransactionResponse, len(ledger))
	for i, tx := range ledger {
		out[i] = TransactionResponse{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    string(tx.Category),
			Type:        string(tx.Type),
			Weekday:     tx.Weekday.String(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Regenerate handles POST /api/v1/ledger/regenerate
func (h *LedgerHandler) Regenerate(c echo.Context) error {
	started := time.Now()
	stats, err := h.ledgerService.Regenerate()
	if err != nil {
		log.Error().Err(err).Msg("Failed to regenerate ledger")
		return NewInternalError(c, "Failed to regenerate ledger")
	}

	log.Info().
		Int("transactions", stats.Transactions).
		Dur("took", time.Since(started)).
		Msg("Ledger regenerated")
	return c.JSON(http.StatusOK, toLedgerStatsResponse(stats))
}
