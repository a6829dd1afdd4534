package ledger

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/engine"
	"feabscopy/internal/models"
)

// recompute replays the full trade log against the user's accounts inside
// tx and persists the result. Called from every mutation entry point that
// changes a replay input; never from a read path.
func (s *Service) recompute(tx *gorm.DB, user *models.User) error {
	trades, err := s.loadTradeLog(tx)
	if err != nil {
		return err
	}

	accounts, accumulated := engine.Replay(trades, user.Accounts)
	user.Accounts = accounts
	user.AccumulatedProfit = accumulated

	return s.saveUser(tx, user)
}

// Recompute replays the trade log for one user and persists the result.
func (s *Service) Recompute(userID string) (*models.User, error) {
	defer s.lockUser(userID)()

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.loadUser(tx, userID)
		if err != nil {
			return err
		}
		return s.recompute(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RecomputeAll replays the trade log for every user. Invoked when the
// trade log itself changes, since that invalidates all cached P/L.
func (s *Service) RecomputeAll() error {
	var ids []string
	if err := s.db.Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, id := range ids {
		if _, err := s.Recompute(id); err != nil {
			return fmt.Errorf("failed to recompute ledger for user %s: %w", id, err)
		}
	}
	s.log.Debug("Recomputed all ledgers", zap.Int("users", len(ids)))
	return nil
}
