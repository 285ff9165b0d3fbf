package generator

import (
	"strings"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/util"
)

// Categorize maps a free-text description to a category. Income keywords
// win first; then the catalog is scanned in declaration order and the
// first case-insensitive substring match decides. Anything else is Other.
// Total and deterministic: the same description always yields the same
// category.
func Categorize(description string) domain.Category {
	upper := strings.ToUpper(description)

	for _, kw := range incomeKeywords {
		if strings.Contains(upper, kw) {
			return domain.CategoryIncome
		}
	}

	for _, profile := range Profiles {
		for _, kw := range profile.Keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				return profile.Category
			}
		}
	}

	return domain.CategoryOther
}

// Enrich recomputes every derived field of a transaction from its date
// and description. Idempotent: enriching an already enriched transaction
// is a no-op.
func Enrich(t domain.Transaction) domain.Transaction {
	t.Category = Categorize(t.Description)
	t.Year = t.Date.Year()
	t.Month = t.Date.Month()
	t.MonthName = t.Date.Month().String()
	t.Weekday = t.Date.Weekday()
	_, t.ISOWeek = t.Date.ISOWeek()
	t.Quarter = util.QuarterOf(t.Date.Month())
	if t.Amount.IsNegative() {
		t.Type = domain.TransactionTypeDebit
	} else {
		t.Type = domain.TransactionTypeCredit
	}
	return t
}

// EnrichAll enriches every transaction and returns the ledger sorted by
// date.
func EnrichAll(ledger domain.Ledger) domain.Ledger {
	out := make(domain.Ledger, len(ledger))
	for i, t := range ledger {
		out[i] = Enrich(t)
	}
	out.SortByDate()
	return out
}
