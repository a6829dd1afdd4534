package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/models"
)

var defaultCopyFactor = decimal.NewFromFloat(0.01)

// loadUser fetches a user with their copy accounts, normalizing any
// malformed persisted account data instead of failing the computation.
func (s *Service) loadUser(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Preload("Accounts").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	for i := range user.Accounts {
		normalizeAccount(&user.Accounts[i], s.rules.MaturityDays)
	}
	return &user, nil
}

// normalizeAccount repairs malformed persisted fields on read: a missing
// copy factor falls back to the moderate plan's 1%, a missing status means
// Active, and capital defaults to the invested amount. It also applies the
// lazy maturity check, so a stopped sweep scheduler cannot leave an
// account Active past its maturity date.
func normalizeAccount(a *models.CopyAccount, maturityDays int) {
	if a.PlanCopyFactor.IsZero() {
		a.PlanCopyFactor = defaultCopyFactor
	}
	switch a.Status {
	case models.StatusActive, models.StatusMatured, models.StatusTerminated:
	default:
		a.Status = models.StatusActive
	}
	if a.CurrentCapital.IsZero() && !a.InvestedAmount.IsZero() {
		a.CurrentCapital = a.InvestedAmount
	}
	if a.MaturityDate.IsZero() && !a.StartDate.IsZero() {
		a.MaturityDate = a.StartDate.AddDate(0, 0, maturityDays)
	}
	if a.Status == models.StatusActive && !a.MaturityDate.IsZero() && !time.Now().Before(a.MaturityDate) {
		a.Status = models.StatusMatured
	}
}

// loadTradeLog fetches the full admin trade log. Corrupt rows are dropped,
// not propagated: a damaged entry must never poison the replay.
func (s *Service) loadTradeLog(tx *gorm.DB) ([]models.TradeRecord, error) {
	var trades []models.TradeRecord
	if err := tx.Order("occurred_at asc").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trade log: %w", err)
	}

	valid := trades[:0]
	for _, t := range trades {
		if t.Valid() {
			valid = append(valid, t)
		} else {
			s.log.Warn("Dropping corrupt trade record", zap.String("trade_id", t.ID))
		}
	}
	return valid, nil
}

// loadSettings fetches the singleton platform settings row.
func (s *Service) loadSettings(tx *gorm.DB) (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	if err := tx.First(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load platform settings: %w", err)
	}
	return &settings, nil
}

// saveUser persists the user row and every account row inside tx.
// Accounts are saved one by one so a removed account (termination,
// redemption) can be deleted explicitly by the operation that removed it.
func (s *Service) saveUser(tx *gorm.DB, user *models.User) error {
	if err := tx.Omit("Accounts").Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	for i := range user.Accounts {
		if err := tx.Save(&user.Accounts[i]).Error; err != nil {
			return fmt.Errorf("failed to save account %s: %w", user.Accounts[i].ID, err)
		}
	}
	return nil
}
