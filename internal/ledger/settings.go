package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/models"
)

// SettingsInput is the admin settings form.
type SettingsInput struct {
	NgnToUsd              decimal.Decimal `json:"ngn_to_usd"`
	UsdToNgn              decimal.Decimal `json:"usd_to_ngn"`
	PerformanceFeePercent decimal.Decimal `json:"performance_fee_percent"`
}

// Settings returns the current platform settings.
func (s *Service) Settings() (*models.PlatformSettings, error) {
	return s.loadSettings(s.db)
}

// UpdateSettings replaces the platform settings. Rates must be positive;
// the fee must lie in [0, 100]. Running operations are unaffected: each
// operation reads settings once at its start.
func (s *Service) UpdateSettings(in SettingsInput) (*models.PlatformSettings, error) {
	if !in.NgnToUsd.IsPositive() || !in.UsdToNgn.IsPositive() {
		return nil, fmt.Errorf("exchange rates must be positive: %w", ErrValidation)
	}
	if in.PerformanceFeePercent.IsNegative() || in.PerformanceFeePercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("performance fee must be between 0 and 100: %w", ErrValidation)
	}

	var settings *models.PlatformSettings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		settings, err = s.loadSettings(tx)
		if err != nil {
			return err
		}
		settings.NgnToUsd = in.NgnToUsd
		settings.UsdToNgn = in.UsdToNgn
		settings.PerformanceFeePercent = in.PerformanceFeePercent
		if err := tx.Save(settings).Error; err != nil {
			return fmt.Errorf("failed to save platform settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Platform settings updated",
		zap.String("ngn_to_usd", settings.NgnToUsd.String()),
		zap.String("usd_to_ngn", settings.UsdToNgn.String()),
		zap.String("performance_fee_percent", settings.PerformanceFeePercent.String()),
	)
	return settings, nil
}
