package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"feabscopy/internal/models"
)

// WithdrawalNet is the amount credited to the USD wallet when accumulated
// profit is withdrawn: the gross profit minus the performance fee, rounded
// to 2 decimal places (half-up).
func WithdrawalNet(accumulated, feePercent decimal.Decimal) decimal.Decimal {
	fee := accumulated.Mul(feePercent).Div(hundred)
	return accumulated.Sub(fee).Round(2)
}

// TerminationRefund is the amount returned on early termination: current
// capital less the penalty, rounded to 2 decimal places. The penalty
// applies to current capital, not the original investment.
func TerminationRefund(capital, penaltyRate decimal.Decimal) decimal.Decimal {
	return capital.Mul(decimal.NewFromInt(1).Sub(penaltyRate)).Round(2)
}

// EarliestStart returns the earliest valid start date among the deployed
// accounts. ok is false when there is no deployed account with a valid
// start date, which makes withdrawal ineligible.
func EarliestStart(accounts []models.CopyAccount) (earliest time.Time, ok bool) {
	for i := range accounts {
		if !accounts[i].Deployed() || accounts[i].StartDate.IsZero() {
			continue
		}
		if !ok || accounts[i].StartDate.Before(earliest) {
			earliest = accounts[i].StartDate
			ok = true
		}
	}
	return earliest, ok
}

// DaysSince is the number of full days elapsed from t to now. Negative if
// t is in the future. Lock-period checks compare this with >=, so day 15
// is the first eligible day for a 15-day lock.
func DaysSince(t, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
