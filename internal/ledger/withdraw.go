package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/engine"
	"feabscopy/internal/models"
)

// WithdrawalResult reports a successful profit withdrawal.
type WithdrawalResult struct {
	GrossAmount decimal.Decimal `json:"gross_amount"`
	FeePercent  decimal.Decimal `json:"fee_percent"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	User        *models.User    `json:"user"`
}

// WithdrawProfit realizes the accumulated profit into the USD wallet, net
// of the performance fee, and starts a fresh accrual cycle: every
// account's ProfitOrLoss resets to zero while CurrentCapital keeps the
// accrued value permanently. Rejections leave all state untouched and
// carry the specific reason.
func (s *Service) WithdrawProfit(userID string) (*WithdrawalResult, error) {
	defer s.lockUser(userID)()

	var result *WithdrawalResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}

		if !user.AccumulatedProfit.IsPositive() {
			return fmt.Errorf("nothing to withdraw: %w", ErrIneligible)
		}

		deployed := 0
		for i := range user.Accounts {
			if user.Accounts[i].Deployed() {
				deployed++
			}
		}
		if deployed == 0 {
			return fmt.Errorf("no active copy accounts: %w", ErrIneligible)
		}

		earliest, ok := engine.EarliestStart(user.Accounts)
		if !ok || engine.DaysSince(earliest, time.Now()) < s.rules.ProfitLockDays {
			return fmt.Errorf("lock period active: profit withdrawal is available %d days after your first plan activation: %w",
				s.rules.ProfitLockDays, ErrIneligible)
		}

		settings, err := s.loadSettings(tx)
		if err != nil {
			return err
		}

		gross := user.AccumulatedProfit
		net := engine.WithdrawalNet(gross, settings.PerformanceFeePercent)

		user.UsdBalance = user.UsdBalance.Add(net)
		user.AccumulatedProfit = decimal.Zero
		for i := range user.Accounts {
			user.Accounts[i].ProfitOrLoss = decimal.Zero
		}

		if err := s.saveUser(tx, user); err != nil {
			return err
		}

		result = &WithdrawalResult{
			GrossAmount: gross,
			FeePercent:  settings.PerformanceFeePercent,
			NetAmount:   net,
			User:        user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Profit withdrawn",
		zap.String("user_id", userID),
		zap.String("gross", result.GrossAmount.StringFixed(2)),
		zap.String("net", result.NetAmount.StringFixed(2)),
	)
	return result, nil
}
