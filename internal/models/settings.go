package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformSettings is the single admin-editable settings row: internal
// NGN/USD conversion rates and the performance fee charged on withdrawn
// profits. Settings are loaded once per operation and passed into the
// engine as explicit parameters, never read mid-computation.
type PlatformSettings struct {
	ID                    uint            `gorm:"primaryKey" json:"-"`
	NgnToUsd              decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"ngn_to_usd"`
	UsdToNgn              decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"usd_to_ngn"`
	PerformanceFeePercent decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"performance_fee_percent"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
