package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/engine"
	"feabscopy/internal/models"
)

// ActivatePlan opens a new copy account on one of the fixed plans,
// debiting the invested amount from the USD wallet. The plan's copy factor
// is copied onto the account so later catalog changes never affect it.
func (s *Service) ActivatePlan(userID, planName string, amount decimal.Decimal) (*models.User, error) {
	plan, ok := models.PlanByName(planName)
	if !ok {
		return nil, fmt.Errorf("unknown plan %q: %w", planName, ErrValidation)
	}
	if !models.ValidInvestmentAmount(amount) {
		return nil, fmt.Errorf("investment amount must be one of the fixed amounts: %w", ErrValidation)
	}

	defer s.lockUser(userID)()

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.loadUser(tx, userID)
		if err != nil {
			return err
		}

		if user.UsdBalance.LessThan(amount) {
			return fmt.Errorf("need $%s but have $%s: %w",
				amount.StringFixed(2), user.UsdBalance.StringFixed(2), ErrInsufficientFunds)
		}

		now := time.Now()
		account := models.CopyAccount{
			ID:             uuid.NewString(),
			UserID:         user.ID,
			PlanName:       plan.Name,
			InvestedAmount: amount,
			CurrentCapital: amount,
			ProfitOrLoss:   decimal.Zero,
			PlanCopyFactor: plan.CopyFactor,
			Status:         models.StatusActive,
			StartDate:      now,
			MaturityDate:   now.AddDate(0, 0, s.rules.MaturityDays),
		}

		user.UsdBalance = user.UsdBalance.Sub(amount)
		user.Accounts = append(user.Accounts, account)

		// The new account must immediately reflect the existing trade log.
		return s.recompute(tx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Copy plan activated",
		zap.String("user_id", userID),
		zap.String("plan", plan.Name),
		zap.String("amount", amount.StringFixed(2)),
	)
	return user, nil
}

// TerminationResult reports the outcome of an early termination.
type TerminationResult struct {
	AccountID    string          `json:"account_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	User         *models.User    `json:"user"`
}

// TerminateAccount force-closes an active account before maturity at a
// penalty. The refund is 90% of current capital, not of the original
// investment, and the account's accrued profit is forfeited with it:
// accumulated profit is recomputed over the remaining accounts only.
func (s *Service) TerminateAccount(userID, accountID string) (*TerminationResult, error) {
	defer s.lockUser(userID)()

	var result *TerminationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range user.Accounts {
			if user.Accounts[i].ID == accountID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		account := user.Accounts[idx]

		if account.Status != models.StatusActive {
			return fmt.Errorf("only active accounts can be terminated early: %w", ErrIneligible)
		}
		if engine.DaysSince(account.StartDate, time.Now()) < s.rules.TerminationLockDays {
			return fmt.Errorf("early termination is available %d days after activation: %w",
				s.rules.TerminationLockDays, ErrIneligible)
		}

		refund := engine.TerminationRefund(account.CurrentCapital, s.rules.TerminationPenaltyRate)

		user.UsdBalance = user.UsdBalance.Add(refund)
		user.Accounts = append(user.Accounts[:idx], user.Accounts[idx+1:]...)
		user.AccumulatedProfit = engine.AccumulatedProfit(user.Accounts)

		if err := tx.Delete(&models.CopyAccount{}, "id = ?", account.ID).Error; err != nil {
			return fmt.Errorf("failed to delete account %s: %w", account.ID, err)
		}
		if err := s.saveUser(tx, user); err != nil {
			return err
		}

		result = &TerminationResult{AccountID: account.ID, RefundAmount: refund, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Account terminated early",
		zap.String("user_id", userID),
		zap.String("account_id", accountID),
		zap.String("refund", result.RefundAmount.StringFixed(2)),
	)
	return result, nil
}

// RedeemMatured closes a matured account at full current capital, with no
// penalty. Like termination, the account leaves the set and accumulated
// profit is recomputed over the remainder.
func (s *Service) RedeemMatured(userID, accountID string) (*TerminationResult, error) {
	defer s.lockUser(userID)()

	var result *TerminationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range user.Accounts {
			if user.Accounts[i].ID == accountID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		account := user.Accounts[idx]

		if account.Status != models.StatusMatured {
			return fmt.Errorf("only matured accounts can be redeemed: %w", ErrIneligible)
		}

		refund := account.CurrentCapital.Round(2)

		user.UsdBalance = user.UsdBalance.Add(refund)
		user.Accounts = append(user.Accounts[:idx], user.Accounts[idx+1:]...)
		user.AccumulatedProfit = engine.AccumulatedProfit(user.Accounts)

		if err := tx.Delete(&models.CopyAccount{}, "id = ?", account.ID).Error; err != nil {
			return fmt.Errorf("failed to delete account %s: %w", account.ID, err)
		}
		if err := s.saveUser(tx, user); err != nil {
			return err
		}

		result = &TerminationResult{AccountID: account.ID, RefundAmount: refund, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Matured account redeemed",
		zap.String("user_id", userID),
		zap.String("account_id", accountID),
		zap.String("refund", result.RefundAmount.StringFixed(2)),
	)
	return result, nil
}

// Ledger returns the user's current ledger snapshot.
func (s *Service) Ledger(userID string) (*models.User, error) {
	return s.loadUser(s.db, userID)
}
