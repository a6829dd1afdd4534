package ledger

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"feabscopy/internal/models"
)

// SweepMaturities transitions every active account whose maturity date has
// passed to Matured, across all users. Matured accounts keep accruing P/L
// (their capital stays deployed) but become redeemable at full current
// capital without the early-termination penalty. Returns the number of
// accounts transitioned.
func (s *Service) SweepMaturities(now time.Time) (int, error) {
	result := s.db.Model(&models.CopyAccount{}).
		Where("status = ? AND maturity_date <= ?", models.StatusActive, now).
		Update("status", models.StatusMatured)
	if result.Error != nil {
		return 0, fmt.Errorf("maturity sweep failed: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.log.Info("Accounts matured", zap.Int64("count", result.RowsAffected))
	}
	return int(result.RowsAffected), nil
}
