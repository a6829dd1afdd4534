package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"feabscopy/internal/models"
)

func TestWithdrawalNet(t *testing.T) {
	testCases := []struct {
		name        string
		accumulated string
		feePercent  string
		expected    string
	}{
		{"thirty percent fee", "90", "30", "63"},
		{"zero fee", "100", "0", "100"},
		{"fee rounding", "33.33", "30", "23.33"}, // 33.33 - 9.999 = 23.331
		{"full fee", "50", "100", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := WithdrawalNet(dec(tc.accumulated), dec(tc.feePercent))
			assert.True(t, dec(tc.expected).Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestTerminationRefund(t *testing.T) {
	// 10% penalty on current capital, not original investment.
	got := TerminationRefund(dec("1090"), dec("0.10"))
	assert.True(t, dec("981").Equal(got), "expected 981, got %s", got)

	got = TerminationRefund(dec("999.99"), dec("0.10"))
	assert.True(t, dec("899.99").Equal(got), "expected 899.99, got %s", got)
}

func TestEarliestStart(t *testing.T) {
	now := time.Now()

	older := account("1000", "0.01")
	older.StartDate = now.AddDate(0, 0, -40)
	newer := account("500", "0.005")
	newer.StartDate = now.AddDate(0, 0, -5)
	noStart := account("1500", "0.025")
	noStart.StartDate = time.Time{}
	terminated := account("150", "0.01")
	terminated.Status = models.StatusTerminated
	terminated.StartDate = now.AddDate(0, 0, -100)

	t.Run("picks earliest valid deployed start", func(t *testing.T) {
		earliest, ok := EarliestStart([]models.CopyAccount{newer, older, noStart, terminated})
		assert.True(t, ok)
		assert.Equal(t, older.StartDate, earliest)
	})

	t.Run("no valid start dates", func(t *testing.T) {
		_, ok := EarliestStart([]models.CopyAccount{noStart, terminated})
		assert.False(t, ok)
	})

	t.Run("empty set", func(t *testing.T) {
		_, ok := EarliestStart(nil)
		assert.False(t, ok)
	})
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		start    time.Time
		expected int
	}{
		{"fifteen days exactly", now.AddDate(0, 0, -15), 15},
		{"just under fifteen days", now.AddDate(0, 0, -15).Add(time.Hour), 14},
		{"thirty days", now.AddDate(0, 0, -30), 30},
		{"same instant", now, 0},
		{"future start", now.AddDate(0, 0, 2), -2},
		{"zero time", time.Time{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DaysSince(tc.start, now))
		})
	}
}
