package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epargne-app/epargne-backend/internal/domain"
	"github.com/epargne-app/epargne-backend/internal/testutil"
)

func TestOpportunities_CompressibleSpending(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-05", "BISTROT PARISIEN", -100),
		testutil.Tx("2024-01-08", "FNAC", -200),
		testutil.Tx("2024-01-12", "CINEMA GAUMONT", -50),
		testutil.Tx("2024-01-15", "NEXITY LOYER", -1200), // not compressible
	})
	svc := NewSavingsService(repo)

	opps, err := svc.Opportunities(domain.FilterAll)
	require.NoError(t, err)

	c := opps.Compressible
	assert.Equal(t, "350", c.Total.String())
	assert.Equal(t, "70", c.Reduction20.String())
	assert.Equal(t, "105", c.Reduction30.String())
	require.Len(t, c.ByCategory, 3)
	// Declared compressible order: Restaurants, Leisure, Shopping.
	assert.Equal(t, domain.CategoryRestaurants, c.ByCategory[0].Category)
	assert.Equal(t, domain.CategoryLeisure, c.ByCategory[1].Category)
	assert.Equal(t, domain.CategoryShopping, c.ByCategory[2].Category)
}

func TestOpportunities_SubscriptionsNeedTwoOccurrences(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-05", "NETFLIX.COM", -13.49),
		testutil.Tx("2024-02-05", "NETFLIX.COM", -13.49),
		testutil.Tx("2024-03-05", "NETFLIX.COM", -13.49),
		testutil.Tx("2024-01-10", "SPOTIFY AB", -9.99), // single occurrence
	})
	svc := NewSavingsService(repo)

	opps, err := svc.Opportunities(domain.FilterAll)
	require.NoError(t, err)

	require.Len(t, opps.Subscriptions, 1)
	sub := opps.Subscriptions[0]
	assert.Equal(t, "NETFLIX.COM", sub.Description)
	assert.Equal(t, 3, sub.Occurrences)
	assert.Equal(t, "13.49", sub.MeanAmount.StringFixed(2))
	assert.Equal(t, "13.49", opps.SubscriptionsTotal.StringFixed(2))
}

func TestOpportunities_OutliersAboveTwoSigma(t *testing.T) {
	ledger := domain.Ledger{
		testutil.Tx("2024-01-01", "CARREFOUR CITY", -50),
		testutil.Tx("2024-01-02", "CARREFOUR CITY", -52),
		testutil.Tx("2024-01-03", "CARREFOUR CITY", -48),
		testutil.Tx("2024-01-04", "CARREFOUR CITY", -51),
		testutil.Tx("2024-01-05", "CARREFOUR CITY", -49),
		testutil.Tx("2024-01-06", "CARREFOUR CITY", -950), // the outlier
	}
	repo := testutil.NewMockLedgerRepository(ledger)
	svc := NewSavingsService(repo)

	opps, err := svc.Opportunities(domain.FilterAll)
	require.NoError(t, err)

	require.Len(t, opps.Outliers, 1)
	assert.Equal(t, "-950", opps.Outliers[0].Amount.String())
	assert.Equal(t, domain.CategoryGroceries, opps.Outliers[0].Category)
}

func TestOpportunities_OutliersSkipSmallCategories(t *testing.T) {
	// Five rows or fewer: no outlier detection at all.
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-01", "CARREFOUR CITY", -10),
		testutil.Tx("2024-01-02", "CARREFOUR CITY", -10),
		testutil.Tx("2024-01-03", "CARREFOUR CITY", -10),
		testutil.Tx("2024-01-04", "CARREFOUR CITY", -10),
		testutil.Tx("2024-01-05", "CARREFOUR CITY", -9000),
	})
	svc := NewSavingsService(repo)

	opps, err := svc.Opportunities(domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, opps.Outliers)
}

func TestOpportunities_WeekendSplit(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-06", "BISTROT PARISIEN", -75), // Saturday
		testutil.Tx("2024-01-07", "CINEMA GAUMONT", -25),           // Sunday
		testutil.Tx("2024-01-08", "CARREFOUR CITY", -300),           // Monday
	})
	svc := NewSavingsService(repo)

	opps, err := svc.Opportunities(domain.FilterAll)
	require.NoError(t, err)

	assert.Equal(t, "100", opps.WeekSplit.Weekend.String())
	assert.Equal(t, "300", opps.WeekSplit.Weekday.String())
	assert.InDelta(t, 25.0, opps.WeekSplit.WeekendShare, 0.01)
}

func TestGoalProgress_TargetValidation(t *testing.T) {
	svc := NewSavingsService(testutil.NewMockLedgerRepository(nil))

	for _, target := range []int64{-1, 2001} {
		_, err := svc.GoalProgress(domain.FilterAll, decimal.NewFromInt(target))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "target=%d", target)
	}
}

func TestGoalProgress_ProjectedFromReduction(t *testing.T) {
	repo := testutil.NewMockLedgerRepository(domain.Ledger{
		testutil.Tx("2024-01-05", "BISTROT PARISIEN", -500),
	})
	svc := NewSavingsService(repo)

	progress, err := svc.GoalProgress(domain.FilterAll, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, "100", progress.Projected.String())
	assert.InDelta(t, 50.0, progress.Percent, 0.01)
}

func TestGoalProgress_ZeroTargetAllowed(t *testing.T) {
	svc := NewSavingsService(testutil.NewMockLedgerRepository(nil))

	progress, err := svc.GoalProgress(domain.FilterAll, decimal.Zero)
	require.NoError(t, err)
	assert.Zero(t, progress.Percent)
}
