// Package generator produces the synthetic bank ledger the dashboard
// runs on, and owns the keyword categorizer shared with CSV loading.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/util"
)

// DefaultTransactionCount is the expense row count used by the
// regeneration trigger.
const DefaultTransactionCount = 600

// citySuffixProbability is the chance a generated description carries a
// trailing city token.
const citySuffixProbability = 0.3

// Generator builds synthetic ledgers. Not safe for concurrent use; each
// caller should own its instance.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded from the clock.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a deterministic Generator, used by tests.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces an enriched ledger with n expense rows dated
// uniformly inside [start, end] plus one salary credit per calendar
// month in the range. The result is sorted by ascending date.
func (g *Generator) Generate(n int, start, end time.Time) (domain.Ledger, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: transaction count must not be negative", domain.ErrInvalidInput)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: generation range", domain.ErrInvalidDateRange)
	}

	ledger := make(domain.Ledger, 0, n+16)

	// One salary credit per month, landing between day 28 and the last
	// valid day of that month.
	for cursor := util.MonthStart(start); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		targetDay := 28 + g.rng.Intn(4) // 28..31
		salaryDate := util.CalculateActualDate(cursor.Year(), cursor.Month(), targetDay)
		if salaryDate.After(end) {
			continue
		}
		ledger = append(ledger, domain.Transaction{
			ID:          uuid.New(),
			Date:        salaryDate,
			Description: salaryDescription,
			Amount:      g.randomAmount(salaryMin, salaryMax),
		})
	}

	daysRange := int(end.Sub(start).Hours() / 24)
	for i := 0; i < n; i++ {
		profile := Profiles[g.rng.Intn(len(Profiles))]
		description := profile.Keywords[g.rng.Intn(len(profile.Keywords))]
		if g.rng.Float64() < citySuffixProbability {
			description += " " + cityTokens[g.rng.Intn(len(cityTokens))]
		}

		amount := g.randomAmount(profile.MinAmount, profile.MaxAmount).Neg()
		date := start.AddDate(0, 0, g.rng.Intn(daysRange+1))

		ledger = append(ledger, domain.Transaction{
			ID:          uuid.New(),
			Date:        date,
			Description: description,
			Amount:      amount,
		})
	}

	return EnrichAll(ledger), nil
}

// randomAmount draws uniformly from [min, max] and rounds to cents.
func (g *Generator) randomAmount(min, max float64) decimal.Decimal {
	v := min + g.rng.Float64()*(max-min)
	return decimal.NewFromFloat(math.Round(v*100) / 100)
}
