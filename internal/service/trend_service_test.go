package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/testutil"
)

func TestTrends_WeeklyBucketsAreContiguous(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-01", "CARREFOUR CITY", -10), // Monday
		testutil.Tx("2024-01-22", "CARREFOUR CITY", -30), // three weeks later
	})
	svc := NewTrendService(repo, nil)

	trends, err := svc.Trends(domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, trends.Weekly, 4, "gap weeks must be zero-filled")

	assert.True(t, trends.Weekly[0].BucketStart.Equal(day("2024-01-01")))
	assert.True(t, trends.Weekly[1].Total.IsZero())
	assert.True(t, trends.Weekly[2].Total.IsZero())
	assert.Equal(t, "30", trends.Weekly[3].Total.String())

	for i := 1; i < len(trends.Weekly); i++ {
		gap := trends.Weekly[i].BucketStart.Sub(trends.Weekly[i-1].BucketStart)
		assert.Equal(t, 7*24*time.Hour, gap)
	}
}

func TestTrends_MonthlyMatrixZeroFilled(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-05", "CARREFOUR CITY", -100),
		testutil.Tx("2024-02-10", "NETFLIX.COM", -15),
	})
	svc := NewTrendService(repo, nil)

	trends, err := svc.Trends(domain.FilterAll)
	require.NoError(t, err)

	matrix := trends.MonthlyByCategory
	require.Equal(t, []string{"2024-01", "2024-02"}, matrix.Months)
	require.Len(t, matrix.Categories, 2)
	require.Len(t, matrix.Values, 2)

	// Every month has a value for every category, zero when absent.
	var zeros int
	for _, row := range matrix.Values {
		require.Len(t, row, 2)
		for _, v := range row {
			if v.IsZero() {
				zeros++
			}
		}
	}
	assert.Equal(t, 2, zeros)
}

func TestTrends_IncomesIgnored(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(testutil.ThreeMonthLedger())
	svc := NewTrendService(repo, nil)

	trends, err := svc.Trends(domain.FilterAll)
	require.NoError(t, err)

	monthlyTotal := sumDecimals(nil)
	for _, p := range trends.Monthly {
		monthlyTotal = monthlyTotal.Add(p.Total)
	}
	assert.Equal(t, "8000", monthlyTotal.String(), "expenses only: 2000+3500+2500")
}

func TestForecast_InsufficientData(t *testing.T) {
	// Two spending weeks, far below the ten-bucket minimum.
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-02", "CARREFOUR CITY", -50),
		testutil.Tx("2024-01-09", "CARREFOUR CITY", -60),
	})
	svc := NewTrendService(repo, nil)

	forecast, err := svc.Forecast(4)
	require.NoError(t, err)
	assert.False(t, forecast.Available)
	assert.NotEmpty(t, forecast.Reason)
	assert.Empty(t, forecast.Predictions)
}

func TestForecast_NaivePredictionsNonNegative(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(
		testutil.GeneratedLedger(11, 300, "2023-06-01", "2024-03-31"))
	svc := NewTrendService(repo, nil)

	forecast, err := svc.Forecast(4)
	require.NoError(t, err)
	require.True(t, forecast.Available)
	require.Len(t, forecast.Predictions, 4)
	for i, p := range forecast.Predictions {
		assert.False(t, p.IsNegative(), "prediction %d is negative: %s", i, p)
	}
	assert.Contains(t, []domain.TrendDirection{domain.TrendRising, domain.TrendFalling}, forecast.Trend)
	assert.Equal(t, "naive", forecast.Model)
	assert.Equal(t, "high", forecast.Confidence)
}

func TestForecast_PeriodsValidated(t *testing.T) {
	svc := NewTrendService(testutil.NewMockLedgerRepository(nil), nil)

	for _, periods := range []int{0, -1, 13} {
		_, err := svc.Forecast(periods)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "periods=%d", periods)
	}
}

type stubEstimator struct {
	out []float64
	err error
}

func (s stubEstimator) Name() string { return "stub" }

func (s stubEstimator) Forecast(series []float64, periods int) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func TestForecast_EstimatorOverridesNaive(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(
		testutil.GeneratedLedger(11, 300, "2023-06-01", "2024-03-31"))
	svc := NewTrendService(repo, stubEstimator{out: []float64{100, 200}})

	forecast, err := svc.Forecast(2)
	require.NoError(t, err)
	require.True(t, forecast.Available)
	assert.Equal(t, "stub", forecast.Model)
	assert.Equal(t, "100", forecast.Predictions[0].String())
	assert.Equal(t, "200", forecast.Predictions[1].String())
}

func TestForecast_EstimatorFailureFallsBack(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(
		testutil.GeneratedLedger(11, 300, "2023-06-01", "2024-03-31"))
	svc := NewTrendService(repo, stubEstimator{err: errors.New("no fit")})

	forecast, err := svc.Forecast(3)
	require.NoError(t, err)
	require.True(t, forecast.Available)
	assert.Equal(t, "naive", forecast.Model)
	require.Len(t, forecast.Predictions, 3)
}

func TestHoltEstimator_TracksLinearTrend(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 100 + 5*float64(i)
	}

	out, err := HoltEstimator{}.Forecast(series, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	// Last observation is 245; a trend-aware forecast keeps climbing.
	for i, v := range out {
		assert.Greater(t, v, 245.0, "step %d", i)
	}
}

func TestHoltEstimator_RejectsShortSeries(t *testing.T) {
	_, err := HoltEstimator{}.Forecast(make([]float64, 10), 2)
	assert.Error(t, err)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
