package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"feabscopy/internal/models"
)

// Period selects a time window of admin trades for display aggregation.
type Period string

const (
	PeriodToday  Period = "today"
	Period7Days  Period = "7days"
	Period30Days Period = "30days"
	PeriodYearly Period = "yearly"
	PeriodAll    Period = "all"
)

// ParsePeriod validates a period string from the API.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, Period7Days, Period30Days, PeriodYearly, PeriodAll:
		return Period(s), nil
	case "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// FilterPeriod returns the trades whose timestamp falls inside the period
// ending at now, sorted newest first. Ties keep their input order. The
// input slice is not modified.
func FilterPeriod(trades []models.TradeRecord, period Period, now time.Time) []models.TradeRecord {
	var since time.Time
	switch period {
	case PeriodToday:
		y, m, d := now.Date()
		since = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Period7Days:
		since = now.AddDate(0, 0, -7)
	case Period30Days:
		since = now.AddDate(0, 0, -30)
	case PeriodYearly:
		since = now.AddDate(-1, 0, 0)
	case PeriodAll:
		// keep everything
	}

	filtered := make([]models.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if period != PeriodAll {
			if t.OccurredAt.Before(since) || t.OccurredAt.After(now) {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].OccurredAt.After(filtered[j].OccurredAt)
	})
	return filtered
}

// PeriodTotal computes the P/L the given trades would contribute across
// all deployed accounts, using the same per-trade formula as Replay, but
// without resetting or touching account state. Display-only aggregate,
// rounded to 2 decimal places.
func PeriodTotal(trades []models.TradeRecord, accounts []models.CopyAccount) decimal.Decimal {
	sum := decimal.Zero
	for _, trade := range trades {
		for i := range accounts {
			if !accounts[i].Deployed() {
				continue
			}
			sum = sum.Add(contribution(trade.PercentageChange, &accounts[i]))
		}
	}
	return sum.Round(2)
}
