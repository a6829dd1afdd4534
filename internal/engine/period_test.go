package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feabscopy/internal/models"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		input       string
		expected    Period
		expectError bool
	}{
		{"today", PeriodToday, false},
		{"7days", Period7Days, false},
		{"30days", Period30Days, false},
		{"yearly", PeriodYearly, false},
		{"all", PeriodAll, false},
		{"", PeriodAll, false},
		{"fortnight", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			p, err := ParsePeriod(tc.input)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}

func TestFilterPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	trades := []models.TradeRecord{
		tradeAt("1", now.Add(-2*time.Hour)),                 // today
		tradeAt("2", now.AddDate(0, 0, -3)),                 // this week
		tradeAt("3", now.AddDate(0, 0, -20)),                // this month
		tradeAt("4", now.AddDate(0, -6, 0)),                 // this year
		tradeAt("5", now.AddDate(-2, 0, 0)),                 // older
		tradeAt("6", time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)), // today, early morning
	}

	testCases := []struct {
		period        Period
		expectedCount int
	}{
		{PeriodToday, 2},
		{Period7Days, 3},
		{Period30Days, 4},
		{PeriodYearly, 5},
		{PeriodAll, 6},
	}

	for _, tc := range testCases {
		t.Run(string(tc.period), func(t *testing.T) {
			got := FilterPeriod(trades, tc.period, now)
			assert.Len(t, got, tc.expectedCount)

			// Newest first, always.
			for i := 1; i < len(got); i++ {
				assert.False(t, got[i].OccurredAt.After(got[i-1].OccurredAt),
					"trades must be sorted newest first")
			}
		})
	}
}

func TestFilterPeriodStableTies(t *testing.T) {
	now := time.Now()
	a := tradeAt("1", now.Add(-time.Hour))
	a.ID = "first"
	b := tradeAt("2", now.Add(-time.Hour))
	b.ID = "second"

	got := FilterPeriod([]models.TradeRecord{a, b}, PeriodAll, now)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestPeriodTotal(t *testing.T) {
	now := time.Now()
	trades := []models.TradeRecord{
		tradeAt("10", now), // +100 and +50
		tradeAt("-3", now), // -10 and -2.5 (capped)
	}
	accounts := []models.CopyAccount{
		account("1000", "0.01"),
		account("500", "0.005"),
	}

	got := PeriodTotal(trades, accounts)
	assert.True(t, dec("137.5").Equal(got), "expected 137.5, got %s", got)

	// No mutation of account state.
	assert.True(t, accounts[0].ProfitOrLoss.IsZero())
}

func TestPeriodTotalEmpty(t *testing.T) {
	assert.True(t, PeriodTotal(nil, nil).IsZero())
	assert.True(t, PeriodTotal(nil, []models.CopyAccount{account("1000", "0.01")}).IsZero())
}
