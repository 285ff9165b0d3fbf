package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlySummary is one aggregate row keyed by (year, month). It is
// always recomputed from the ledger; there is no other source of truth.
type MonthlySummary struct {
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	Label            string          `json:"label"` // "2024-03"
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"` // absolute value
	Balance          decimal.Decimal `json:"balance"` // income - expense
	TransactionCount int             `json:"transactionCount"`
}

// CategorySummary is one aggregate row per category, scoped to a period.
type CategorySummary struct {
	Category   Category        `json:"category"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"` // absolute value
	Mean       decimal.Decimal `json:"mean"`
	StdDev     float64         `json:"stdDev"`
	Percentage float64         `json:"percentage"` // of period total, 1 decimal
}

// TrendPoint is one resampled expense bucket.
type TrendPoint struct {
	BucketStart time.Time       `json:"bucketStart"`
	Total       decimal.Decimal `json:"total"`
}

// CategoryMatrix is a zero-filled months x categories table of absolute
// expense totals, used for category-evolution charts.
type CategoryMatrix struct {
	Months     []string            `json:"months"` // "2024-03", chronological
	Categories []Category          `json:"categories"`
	Values     [][]decimal.Decimal `json:"values"` // [month][category]
}

// TrendSeries bundles the resampled expense series.
type TrendSeries struct {
	Weekly            []TrendPoint   `json:"weekly"`
	Monthly           []TrendPoint   `json:"monthly"`
	MonthlyByCategory CategoryMatrix `json:"monthlyByCategory"`
}

type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
)

// Forecast carries point predictions for future weekly spending.
// Available is false when there are too few buckets to predict; that is
// a normal outcome, not an error.
type Forecast struct {
	Available     bool              `json:"available"`
	Reason        string            `json:"reason,omitempty"`
	Predictions   []decimal.Decimal `json:"predictions,omitempty"`
	WeeklyAverage decimal.Decimal   `json:"weeklyAverage"`
	Trend         TrendDirection    `json:"trend,omitempty"`
	Confidence    string            `json:"confidence,omitempty"` // "moderate" or "high"
	Model         string            `json:"model,omitempty"`      // "naive" or enhancer name
}

// CategoryAmount pairs a category with a total.
type CategoryAmount struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CompressibleSpending reports the discretionary spend and what cutting
// it by 20% or 30% would free up.
type CompressibleSpending struct {
	Total       decimal.Decimal  `json:"total"`
	ByCategory  []CategoryAmount `json:"byCategory"`
	Reduction20 decimal.Decimal  `json:"reduction20"`
	Reduction30 decimal.Decimal  `json:"reduction30"`
}

// Subscription is a recurring charge detected by grouping identical
// descriptions inside the subscriptions category.
type Subscription struct {
	Description string          `json:"description"`
	Occurrences int             `json:"occurrences"`
	MeanAmount  decimal.Decimal `json:"meanAmount"`
	Total       decimal.Decimal `json:"total"`
}

// OutlierExpense is a transaction whose magnitude exceeds its category's
// mean by more than two standard deviations.
type OutlierExpense struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Threshold   decimal.Decimal `json:"threshold"`
}

// WeekendSplit contrasts weekend and weekday expense totals.
type WeekendSplit struct {
	Weekend      decimal.Decimal `json:"weekend"`
	Weekday      decimal.Decimal `json:"weekday"`
	WeekendShare float64         `json:"weekendShare"` // percent
}

// SavingsOpportunities aggregates the heuristics shown on the savings tab.
type SavingsOpportunities struct {
	Compressible       CompressibleSpending `json:"compressible"`
	Subscriptions      []Subscription       `json:"subscriptions"`
	SubscriptionsTotal decimal.Decimal      `json:"subscriptionsTotal"` // sum of mean amounts
	Outliers           []OutlierExpense     `json:"outliers"`
	WeekSplit          WeekendSplit         `json:"weekSplit"`
}

// GoalProgress measures projected savings against the monthly target.
type GoalProgress struct {
	Target    decimal.Decimal `json:"target"`
	Projected decimal.Decimal `json:"projected"`
	Percent   float64         `json:"percent"`
}

type HealthLevel string

const (
	HealthExcellent HealthLevel = "Excellent"
	HealthGood      HealthLevel = "Good"
	HealthAverage   HealthLevel = "Average"
	HealthFragile   HealthLevel = "Fragile"
	HealthCritical  HealthLevel = "Critical"
)

// HealthScore is the 0-100 composite of average balance, balance
// stability and the share of positive months.
type HealthScore struct {
	Score          int             `json:"score"`
	Level          HealthLevel     `json:"level"`
	AverageBalance decimal.Decimal `json:"averageBalance"`
	Stability      float64         `json:"stability"` // balance std-dev
	PositiveMonths int             `json:"positiveMonths"`
	TotalMonths    int             `json:"totalMonths"`
	PositiveRatio  float64         `json:"positiveRatio"` // percent, 1 decimal
}

type WeatherCondition string

const (
	WeatherSunny        WeatherCondition = "sunny"
	WeatherPartlyCloudy WeatherCondition = "partly_cloudy"
	WeatherCloudy       WeatherCondition = "cloudy"
	WeatherRainy        WeatherCondition = "rainy"
	WeatherStormy       WeatherCondition = "stormy"
)

type WeatherTrend string

const (
	WeatherImproving WeatherTrend = "improving"
	WeatherWorsening WeatherTrend = "worsening"
	WeatherStable    WeatherTrend = "stable"
)

// FinancialWeather is the playful single-month condition report.
type FinancialWeather struct {
	Available bool             `json:"available"`
	Reason    string           `json:"reason,omitempty"`
	Score     int              `json:"score"`
	Condition WeatherCondition `json:"condition,omitempty"`
	Trend     WeatherTrend     `json:"trend,omitempty"`
	Balance   decimal.Decimal  `json:"balance"`
	Income    decimal.Decimal  `json:"income"`
	Expense   decimal.Decimal  `json:"expense"`
	Advice    string           `json:"advice,omitempty"`
}

// KPIReport carries the headline indicators of the KPI dashboard.
type KPIReport struct {
	Available         bool            `json:"available"`
	Reason            string          `json:"reason,omitempty"`
	AvgWeeklySpending decimal.Decimal `json:"avgWeeklySpending"`
	WeeklyVolatility  float64         `json:"weeklyVolatility"` // std-dev of weekly buckets
	SavingsRate       float64         `json:"savingsRate"`      // percent
}

// WeekdayStat is per-weekday expense activity.
type WeekdayStat struct {
	Weekday time.Weekday    `json:"weekday"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Mean    decimal.Decimal `json:"mean"`
}

// VelocityReport describes when during the week money moves.
type VelocityReport struct {
	Available        bool          `json:"available"`
	Reason           string        `json:"reason,omitempty"`
	Days             []WeekdayStat `json:"days"` // Monday..Sunday
	PeakDay          time.Weekday  `json:"peakDay"`
	MostExpensiveDay time.Weekday  `json:"mostExpensiveDay"`
	WeekendShare     float64       `json:"weekendShare"` // percent of total
}

// MonthTotal is a calendar-month seasonality bucket (month-of-year, all
// years folded together).
type MonthTotal struct {
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// QuarterTotal is a calendar-quarter seasonality bucket.
type QuarterTotal struct {
	Quarter int             `json:"quarter"`
	Total   decimal.Decimal `json:"total"`
}

// SeasonalityReport folds spending onto the calendar year.
type SeasonalityReport struct {
	Available      bool           `json:"available"`
	Reason         string         `json:"reason,omitempty"`
	Months         []MonthTotal   `json:"months"`
	Quarters       []QuarterTotal `json:"quarters"`
	PeakMonth      time.Month     `json:"peakMonth"`
	LowMonth       time.Month     `json:"lowMonth"`
	Volatility     float64        `json:"volatility"` // coefficient of variation, percent
	Classification string         `json:"classification"`
}

// DailyAnomaly is a day whose total spending fell outside the IQR fences.
type DailyAnomaly struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// AnomalyReport lists unusual spending days detected with IQR fences.
type AnomalyReport struct {
	Available  bool           `json:"available"`
	Reason     string         `json:"reason,omitempty"`
	LowerBound float64        `json:"lowerBound"`
	UpperBound float64        `json:"upperBound"`
	Anomalies  []DailyAnomaly `json:"anomalies"`
	Days       int            `json:"days"`
	Rate       float64        `json:"rate"` // percent of days
}

// CorrelationPair is a strongly correlated category pair (|r| > 0.5).
type CorrelationPair struct {
	A           Category `json:"a"`
	B           Category `json:"b"`
	Coefficient float64  `json:"coefficient"`
}

// CorrelationReport is the Pearson matrix of daily per-category spending.
type CorrelationReport struct {
	Available   bool              `json:"available"`
	Reason      string            `json:"reason,omitempty"`
	Categories  []Category        `json:"categories"`
	Matrix      [][]float64       `json:"matrix"`
	StrongPairs []CorrelationPair `json:"strongPairs"`
}

// BenchmarkRow compares one category against its reference monthly spend.
type BenchmarkRow struct {
	Category   Category        `json:"category"`
	Actual     decimal.Decimal `json:"actual"`
	Benchmark  decimal.Decimal `json:"benchmark"`
	GapPercent float64         `json:"gapPercent"`
}

// BenchmarkReport compares the user's spending profile to fixed
// reference averages.
type BenchmarkReport struct {
	Available       bool           `json:"available"`
	Reason          string         `json:"reason,omitempty"`
	Rows            []BenchmarkRow `json:"rows"`
	MeanAbsoluteGap float64        `json:"meanAbsoluteGap"`
	Profile         string         `json:"profile"`
}

type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

// Alert is a single actionable notification derived from recent activity.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Action  string     `json:"action"`
}

// AlertConfig carries the user-tunable alert thresholds.
type AlertConfig struct {
	DailyThreshold     decimal.Decimal `json:"dailyThreshold"`     // absolute one-day spend
	FrequencyThreshold int             `json:"frequencyThreshold"` // transactions per category per week
}

// DefaultAlertConfig mirrors the default slider positions.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		DailyThreshold:     decimal.NewFromInt(200),
		FrequencyThreshold: 10,
	}
}
