package engine

import (
	"github.com/shopspring/decimal"

	"feabscopy/internal/models"
)

var hundred = decimal.NewFromInt(100)

// contribution is the per-trade P/L allocated to one account. A winning
// admin trade pays the full admin percentage on the invested amount,
// uncapped. A losing trade always costs exactly planCopyFactor of the
// invested amount, no matter how large the admin's actual loss was. That
// asymmetry is the product: uncapped upside, capped downside.
//
// A zero percentage contributes nothing. Ingestion rejects zero
// magnitudes, so a zero here can only come from legacy or hand-edited
// data; charging the loss cap for a 0% outcome would be wrong.
func contribution(pct decimal.Decimal, account *models.CopyAccount) decimal.Decimal {
	switch {
	case pct.IsPositive():
		return account.InvestedAmount.Mul(pct).Div(hundred)
	case pct.IsNegative():
		return account.InvestedAmount.Mul(account.PlanCopyFactor).Neg()
	default:
		return decimal.Zero
	}
}

// Replay recomputes every deployed account's ProfitOrLoss and
// CurrentCapital from scratch against the full trade log, and returns the
// updated accounts together with the aggregate accumulated profit.
//
// The result does not depend on trade order: per-trade contributions are
// independent and commutative. Rounding to 2 decimal places (half-up)
// happens once per account after the full replay, and once more on the
// aggregate, so replaying twice with the same log yields identical values.
// Replay is pure; the caller persists the result.
func Replay(trades []models.TradeRecord, accounts []models.CopyAccount) ([]models.CopyAccount, decimal.Decimal) {
	out := make([]models.CopyAccount, len(accounts))
	copy(out, accounts)

	for i := range out {
		if !out[i].Deployed() {
			continue
		}
		out[i].ProfitOrLoss = decimal.Zero
		out[i].CurrentCapital = out[i].InvestedAmount
	}

	for _, trade := range trades {
		for i := range out {
			if !out[i].Deployed() {
				continue
			}
			pnl := contribution(trade.PercentageChange, &out[i])
			out[i].ProfitOrLoss = out[i].ProfitOrLoss.Add(pnl)
			out[i].CurrentCapital = out[i].CurrentCapital.Add(pnl)
		}
	}

	accumulated := decimal.Zero
	for i := range out {
		if !out[i].Deployed() {
			continue
		}
		out[i].ProfitOrLoss = out[i].ProfitOrLoss.Round(2)
		out[i].CurrentCapital = out[i].CurrentCapital.Round(2)
		accumulated = accumulated.Add(out[i].ProfitOrLoss)
	}

	return out, accumulated.Round(2)
}

// AccumulatedProfit sums ProfitOrLoss over the deployed accounts, rounded
// to 2 decimal places. Used after an account leaves the set, when the
// remaining accounts' cached P/L is still valid and a full replay is not
// needed.
func AccumulatedProfit(accounts []models.CopyAccount) decimal.Decimal {
	sum := decimal.Zero
	for i := range accounts {
		if !accounts[i].Deployed() {
			continue
		}
		sum = sum.Add(accounts[i].ProfitOrLoss)
	}
	return sum.Round(2)
}
