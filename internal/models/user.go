package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the ledger side of a user profile: the dual-currency wallet
// balances, the accumulated copy-trading profit, and the set of copy
// accounts. AccumulatedProfit equals the rounded sum of account P/L after
// every recompute.
type User struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Email             string          `gorm:"uniqueIndex" json:"email"`
	IsAdmin           bool            `gorm:"default:false" json:"is_admin"`
	NgnBalance        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"ngn_balance"`
	UsdBalance        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"usd_balance"`
	AccumulatedProfit decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"accumulated_profit"`
	Accounts          []CopyAccount   `gorm:"foreignKey:UserID" json:"accounts"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
