package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"feabscopy/internal/engine"
	"feabscopy/internal/models"
)

// TradeInput is the admin trade log form. The percentage is entered as a
// positive magnitude; the sign is applied from the outcome, which is how
// the invariant "sign agrees with outcome" holds by construction.
type TradeInput struct {
	Asset            string           `json:"asset"`
	Direction        string           `json:"direction"`
	Outcome          string           `json:"outcome"`
	PercentageChange decimal.Decimal  `json:"percentage_change"`
	EntryPrice       *decimal.Decimal `json:"entry_price,omitempty"`
	ExitPrice        *decimal.Decimal `json:"exit_price,omitempty"`
}

func (in *TradeInput) validate() (models.TradeDirection, models.TradeOutcome, error) {
	if in.Asset == "" {
		return "", "", fmt.Errorf("asset is required: %w", ErrValidation)
	}

	var direction models.TradeDirection
	switch models.TradeDirection(in.Direction) {
	case models.DirectionBuy, models.DirectionSell:
		direction = models.TradeDirection(in.Direction)
	default:
		return "", "", fmt.Errorf("direction must be Buy or Sell: %w", ErrValidation)
	}

	var outcome models.TradeOutcome
	switch models.TradeOutcome(in.Outcome) {
	case models.OutcomeProfit, models.OutcomeLoss:
		outcome = models.TradeOutcome(in.Outcome)
	default:
		return "", "", fmt.Errorf("outcome must be Profit or Loss: %w", ErrValidation)
	}

	if !in.PercentageChange.IsPositive() {
		return "", "", fmt.Errorf("percentage change must be a positive magnitude: %w", ErrValidation)
	}
	if in.EntryPrice != nil && !in.EntryPrice.IsPositive() {
		return "", "", fmt.Errorf("entry price must be positive: %w", ErrValidation)
	}
	if in.ExitPrice != nil && !in.ExitPrice.IsPositive() {
		return "", "", fmt.Errorf("exit price must be positive: %w", ErrValidation)
	}
	return direction, outcome, nil
}

// LogTrade validates and appends an admin trade to the log, then eagerly
// recomputes every user's ledger: the trade log changed, so every cached
// P/L is stale.
func (s *Service) LogTrade(in TradeInput) (*models.TradeRecord, error) {
	direction, outcome, err := in.validate()
	if err != nil {
		return nil, err
	}

	pct := in.PercentageChange
	if outcome == models.OutcomeLoss {
		pct = pct.Neg()
	}

	record := models.TradeRecord{
		ID:               uuid.NewString(),
		OccurredAt:       time.Now(),
		Asset:            in.Asset,
		Direction:        direction,
		EntryPrice:       in.EntryPrice,
		ExitPrice:        in.ExitPrice,
		Outcome:          outcome,
		PercentageChange: pct,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to append trade record: %w", err)
	}

	s.log.Info("Admin trade logged",
		zap.String("trade_id", record.ID),
		zap.String("asset", record.Asset),
		zap.String("outcome", string(record.Outcome)),
		zap.String("percentage_change", record.PercentageChange.String()),
	)

	if err := s.RecomputeAll(); err != nil {
		return nil, err
	}
	return &record, nil
}

// Trades returns the full admin trade log, newest first.
func (s *Service) Trades() ([]models.TradeRecord, error) {
	trades, err := s.loadTradeLog(s.db)
	if err != nil {
		return nil, err
	}
	return engine.FilterPeriod(trades, engine.PeriodAll, time.Now()), nil
}

// PerformanceReport is the period-filtered view of the trade log and its
// simulated P/L impact across the user's deployed accounts.
type PerformanceReport struct {
	Period            engine.Period        `json:"period"`
	Trades            []models.TradeRecord `json:"trades"`
	PeriodProfitLoss  decimal.Decimal      `json:"period_profit_loss"`
	AccumulatedProfit decimal.Decimal      `json:"accumulated_profit"`
}

// Performance computes the display-only period aggregate: the subset of
// trades in the window (newest first) and the P/L they contributed across
// all of the user's deployed accounts. Account state is not touched.
func (s *Service) Performance(userID string, period engine.Period, now time.Time) (*PerformanceReport, error) {
	user, err := s.loadUser(s.db, userID)
	if err != nil {
		return nil, err
	}
	trades, err := s.loadTradeLog(s.db)
	if err != nil {
		return nil, err
	}

	filtered := engine.FilterPeriod(trades, period, now)
	return &PerformanceReport{
		Period:            period,
		Trades:            filtered,
		PeriodProfitLoss:  engine.PeriodTotal(filtered, user.Accounts),
		AccumulatedProfit: user.AccumulatedProfit,
	}, nil
}
