package models

import "github.com/shopspring/decimal"

// Plan is a fixed risk-profile template. The copy factor is the maximum
// loss exposure per trade as a fraction of invested capital; profit
// exposure is always uncapped. Plans are global and immutable; each
// account copies the factor at activation so later catalog edits never
// affect running accounts.
type Plan struct {
	Name       string          `json:"name"`
	RiskLevel  string          `json:"risk_level"`
	CopyFactor decimal.Decimal `json:"copy_factor"`
}

// Plans is the fixed catalog offered by the platform.
var Plans = []Plan{
	{Name: "Titan Shield", RiskLevel: "Low", CopyFactor: decimal.NewFromFloat(0.005)},
	{Name: "Fusion Edge", RiskLevel: "Moderate", CopyFactor: decimal.NewFromFloat(0.01)},
	{Name: "Blaze Mode", RiskLevel: "High", CopyFactor: decimal.NewFromFloat(0.025)},
}

// InvestmentAmounts are the only amounts accepted at plan activation.
var InvestmentAmounts = []decimal.Decimal{
	decimal.NewFromInt(150),
	decimal.NewFromInt(500),
	decimal.NewFromInt(1500),
}

// PlanByName looks up a plan in the catalog.
func PlanByName(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// ValidInvestmentAmount reports whether amount is one of the fixed
// activation amounts.
func ValidInvestmentAmount(amount decimal.Decimal) bool {
	for _, a := range InvestmentAmounts {
		if a.Equal(amount) {
			return true
		}
	}
	return false
}
