package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/gateway"
	"feabscopy/internal/models"
)

// ConvertNGN converts NGN balance into USD at the admin-set ngn_to_usd
// rate. Internal conversion carries no fee.
func (s *Service) ConvertNGN(userID string, usdAmount decimal.Decimal) (*models.User, error) {
	if !usdAmount.IsPositive() {
		return nil, fmt.Errorf("conversion amount must be positive: %w", ErrValidation)
	}

	defer s.lockUser(userID)()

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.loadUser(tx, userID)
		if err != nil {
			return err
		}
		settings, err := s.loadSettings(tx)
		if err != nil {
			return err
		}

		ngnCost := usdAmount.Mul(settings.NgnToUsd).Round(2)
		if user.NgnBalance.LessThan(ngnCost) {
			return fmt.Errorf("need ₦%s but have ₦%s: %w",
				ngnCost.StringFixed(2), user.NgnBalance.StringFixed(2), ErrInsufficientFunds)
		}

		user.NgnBalance = user.NgnBalance.Sub(ngnCost)
		user.UsdBalance = user.UsdBalance.Add(usdAmount)
		return s.saveUser(tx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("NGN converted to USD",
		zap.String("user_id", userID),
		zap.String("usd_amount", usdAmount.StringFixed(2)),
	)
	return user, nil
}

// PayoutResult reports an accepted NGN bank payout.
type PayoutResult struct {
	GrossNgn  decimal.Decimal `json:"gross_ngn"`
	FeeNgn    decimal.Decimal `json:"fee_ngn"`
	NetNgn    decimal.Decimal `json:"net_ngn"`
	Reference string          `json:"reference"`
	User      *models.User    `json:"user"`
}

// WithdrawNGN converts USD balance to NGN at the admin-set usd_to_ngn
// rate, deducts the flat NGN payout fee, and requests a bank payout
// through the payment provider. The balance change commits only after the
// provider accepts the payout; a gateway failure leaves the ledger
// untouched.
func (s *Service) WithdrawNGN(ctx context.Context, userID string, usdAmount decimal.Decimal) (*PayoutResult, error) {
	if !usdAmount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive: %w", ErrValidation)
	}

	defer s.lockUser(userID)()

	var result *PayoutResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}
		settings, err := s.loadSettings(tx)
		if err != nil {
			return err
		}

		if user.UsdBalance.LessThan(usdAmount) {
			return fmt.Errorf("need $%s but have $%s: %w",
				usdAmount.StringFixed(2), user.UsdBalance.StringFixed(2), ErrInsufficientFunds)
		}

		gross := usdAmount.Mul(settings.UsdToNgn).Round(2)
		net := gross.Sub(s.rules.NgnWithdrawalFee)
		if !net.IsPositive() {
			return fmt.Errorf("amount does not cover the ₦%s payout fee: %w",
				s.rules.NgnWithdrawalFee.StringFixed(2), ErrIneligible)
		}

		payout, err := s.gateway.CreatePayout(ctx, userID, net)
		if err != nil {
			return fmt.Errorf("payout request failed: %w", err)
		}

		user.UsdBalance = user.UsdBalance.Sub(usdAmount)
		if err := s.saveUser(tx, user); err != nil {
			return err
		}

		result = &PayoutResult{
			GrossNgn:  gross,
			FeeNgn:    s.rules.NgnWithdrawalFee,
			NetNgn:    net,
			Reference: payout.Reference,
			User:      user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("NGN payout requested",
		zap.String("user_id", userID),
		zap.String("reference", result.Reference),
		zap.String("net_ngn", result.NetNgn.StringFixed(2)),
	)
	return result, nil
}

// CreateVirtualAccount provisions a dedicated NGN collection account for
// bank-transfer deposits through the payment provider.
func (s *Service) CreateVirtualAccount(ctx context.Context, userID string) (*gateway.VirtualAccount, error) {
	user, err := s.loadUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s %s - FeabsCopy", user.FirstName, user.LastName)
	va, err := s.gateway.CreateVirtualAccount(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("virtual account creation failed: %w", err)
	}
	return va, nil
}

// RequestDeposit creates a USDT deposit invoice for the given USD amount.
// Crediting happens out of band when the provider confirms payment.
func (s *Service) RequestDeposit(ctx context.Context, userID string, usdAmount decimal.Decimal) (*gateway.DepositInvoice, error) {
	if !usdAmount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive: %w", ErrValidation)
	}
	if _, err := s.loadUser(s.db, userID); err != nil {
		return nil, err
	}

	invoice, err := s.gateway.CreateDepositInvoice(ctx, userID, usdAmount)
	if err != nil {
		return nil, fmt.Errorf("deposit invoice creation failed: %w", err)
	}
	return invoice, nil
}
