package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/epargne-app/epargne-backend/internal/domain"
)

// HealthService scores overall financial health and reports the
// single-month "financial weather".
type HealthService struct {
	repo domain.LedgerRepository
}

// NewHealthService creates a new HealthService
func NewHealthService(repo domain.LedgerRepository) *HealthService {
	return &HealthService{repo: repo}
}

// Score computes the 0-100 composite from the filtered ledger's monthly
// balances. An empty ledger scores 0 at the critical level.
func (s *HealthService) Score(f domain.PeriodFilter) (domain.HealthScore, error) {
	ledger, err := s.repo.Snapshot().Filter(f)
	if err != nil {
		return domain.HealthScore{}, err
	}

	months := monthlySummaries(ledger)
	if len(months) == 0 {
		return domain.HealthScore{
			Score:          0,
			Level:          domain.HealthCritical,
			AverageBalance: decimal.Zero,
		}, nil
	}

	balances := make([]float64, len(months))
	avgBalance := decimal.Zero
	positive := 0
	for i, m := range months {
		balances[i] = m.Balance.InexactFloat64()
		avgBalance = avgBalance.Add(m.Balance)
		if m.Balance.IsPositive() {
			positive++
		}
	}
	avgBalance = avgBalance.Div(decimal.NewFromInt(int64(len(months)))).Round(2)
	stability := stdDev(balances)
	positiveRatio := float64(positive) / float64(len(months))

	score := 50.0
	if avgBalance.IsPositive() {
		score += math.Min(30, avgBalance.InexactFloat64()/1000*10)
	} else {
		score -= 20
	}
	switch {
	case stability < 500:
		score += 20
	case stability < 1000:
		score += 10
	}
	score += positiveRatio * 30
	score = math.Max(0, math.Min(100, score))

	rounded := int(math.Round(score))
	return domain.HealthScore{
		Score:          rounded,
		Level:          healthLevel(rounded),
		AverageBalance: avgBalance,
		Stability:      stability,
		PositiveMonths: positive,
		TotalMonths:    len(months),
		PositiveRatio:  round1(positiveRatio * 100),
	}, nil
}

func healthLevel(score int) domain.HealthLevel {
	switch {
	case score >= 80:
		return domain.HealthExcellent
	case score >= 60:
		return domain.HealthGood
	case score >= 40:
		return domain.HealthAverage
	case score >= 20:
		return domain.HealthFragile
	default:
		return domain.HealthCritical
	}
}

// Weather reports the playful condition for the most recent month,
// scored against the month before it.
func (s *HealthService) Weather() (domain.FinancialWeather, error) {
	months := monthlySummaries(s.repo.Snapshot())
	if len(months) == 0 {
		return domain.FinancialWeather{
			Available: false,
			Reason:    "no transactions to report on",
			Balance:   decimal.Zero,
			Income:    decimal.Zero,
			Expense:   decimal.Zero,
		}, nil
	}

	last := months[len(months)-1]
	score := 50
	if last.Balance.IsPositive() {
		score += 30
	} else {
		score -= 20
	}
	if last.Income.GreaterThan(last.Expense.Mul(decimal.NewFromFloat(1.2))) {
		score += 20
	} else if last.Income.LessThan(last.Expense) {
		score -= 30
	}

	trend := domain.WeatherStable
	if len(months) > 1 {
		prev := months[len(months)-2]
		if last.Balance.GreaterThan(prev.Balance) {
			score += 10
			trend = domain.WeatherImproving
		} else {
			score -= 10
			trend = domain.WeatherWorsening
		}
	}

	condition, advice := weatherCondition(score)
	return domain.FinancialWeather{
		Available: true,
		Score:     score,
		Condition: condition,
		Trend:     trend,
		Balance:   last.Balance,
		Income:    last.Income,
		Expense:   last.Expense,
		Advice:    advice,
	}, nil
}

func weatherCondition(score int) (domain.WeatherCondition, string) {
	switch {
	case score >= 80:
		return domain.WeatherSunny, "Excellent financial health, a good moment to invest."
	case score >= 60:
		return domain.WeatherPartlyCloudy, "Stable situation, keep up the saving effort."
	case score >= 40:
		return domain.WeatherCloudy, "Watch your spending and review the budget."
	case score >= 20:
		return domain.WeatherRainy, "Cut back on non-essential spending."
	default:
		return domain.WeatherStormy, "Critical situation, consider professional advice."
	}
}
