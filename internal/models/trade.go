package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeDirection is the side of an admin-executed trade.
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "Buy"
	DirectionSell TradeDirection = "Sell"
)

// TradeOutcome is the admin-reported result of a trade.
type TradeOutcome string

const (
	OutcomeProfit TradeOutcome = "Profit"
	OutcomeLoss   TradeOutcome = "Loss"
)

// TradeRecord is one admin-logged trade event. Records are append-only:
// they are created once by an admin action and never mutated or deleted.
// PercentageChange is signed; its sign agrees with Outcome by construction
// at ingestion time (positive for Profit, negative for Loss).
type TradeRecord struct {
	ID               string           `gorm:"primaryKey" json:"id"`
	OccurredAt       time.Time        `gorm:"index;not null" json:"occurred_at"`
	Asset            string           `gorm:"not null" json:"asset"`
	Direction        TradeDirection   `gorm:"not null" json:"direction"`
	EntryPrice       *decimal.Decimal `gorm:"type:decimal(20,8)" json:"entry_price,omitempty"`
	ExitPrice        *decimal.Decimal `gorm:"type:decimal(20,8)" json:"exit_price,omitempty"`
	Outcome          TradeOutcome     `gorm:"not null" json:"outcome"`
	PercentageChange decimal.Decimal  `gorm:"type:decimal(20,8);not null" json:"percentage_change"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Valid reports whether a persisted record is usable by the allocation
// engine. Corrupt rows (empty asset, zero timestamp, or an outcome that
// disagrees with the sign of the percentage) are dropped on load rather
// than propagated into the replay.
func (t *TradeRecord) Valid() bool {
	if t.Asset == "" || t.OccurredAt.IsZero() {
		return false
	}
	switch t.Outcome {
	case OutcomeProfit:
		return t.PercentageChange.IsPositive()
	case OutcomeLoss:
		return t.PercentageChange.IsNegative()
	default:
		return false
	}
}
