package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a copy account.
type AccountStatus string

const (
	StatusActive     AccountStatus = "Active"
	StatusMatured    AccountStatus = "Matured"
	StatusTerminated AccountStatus = "Terminated"
)

// CopyAccount is a user's single activation of a copy plan. InvestedAmount
// and PlanCopyFactor are fixed at creation; CurrentCapital and ProfitOrLoss
// are a cache, always derivable by replaying the full trade log against
// InvestedAmount and PlanCopyFactor.
type CopyAccount struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"index;not null" json:"user_id"`
	PlanName       string          `gorm:"not null" json:"plan_name"`
	InvestedAmount decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"invested_amount"`
	CurrentCapital decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"current_capital"`
	ProfitOrLoss   decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"profit_or_loss"`
	PlanCopyFactor decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"plan_copy_factor"`
	Status         AccountStatus   `gorm:"not null;default:Active" json:"status"`
	StartDate      time.Time       `json:"start_date"`
	MaturityDate   time.Time       `json:"maturity_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Deployed reports whether the account's capital is still in the copy pool
// and therefore participates in replay. Terminated accounts are removed
// from the active set and never replay.
func (a *CopyAccount) Deployed() bool {
	return a.Status == StatusActive || a.Status == StatusMatured
}
