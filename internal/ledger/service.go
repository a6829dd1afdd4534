package ledger

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"feabscopy/internal/config"
	"feabscopy/internal/gateway"
)

// Rules are the fixed ledger rules, converted once from config. They are
// passed into every engine call explicitly; nothing in the ledger reads
// configuration mid-computation.
type Rules struct {
	ProfitLockDays         int
	TerminationLockDays    int
	TerminationPenaltyRate decimal.Decimal
	MaturityDays           int
	NgnWithdrawalFee       decimal.Decimal
}

// RulesFromConfig converts the platform config section into ledger rules.
func RulesFromConfig(p config.Platform) Rules {
	return Rules{
		ProfitLockDays:         p.ProfitLockDays,
		TerminationLockDays:    p.TerminationLockDays,
		TerminationPenaltyRate: decimal.NewFromFloat(p.TerminationPenaltyRate),
		MaturityDays:           p.MaturityDays,
		NgnWithdrawalFee:       decimal.NewFromFloat(p.NgnWithdrawalFee),
	}
}

// Service is the single entry point for all ledger mutations. Every
// operation loads a snapshot of the user's state, computes the result via
// the allocation engine, and writes it back in one transaction. Operations
// on the same user are serialized with a per-user mutex to prevent lost
// updates between read and write.
type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	gateway gateway.ClientInterface
	rules   Rules

	locks sync.Map // userID -> *sync.Mutex
}

// NewService creates a new ledger service.
func NewService(log *zap.Logger, db *gorm.DB, gw gateway.ClientInterface, rules Rules) *Service {
	return &Service{
		db:      db,
		log:     log,
		gateway: gw,
		rules:   rules,
	}
}

// lockUser serializes read-modify-write cycles per user. The returned
// function releases the lock.
func (s *Service) lockUser(userID string) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
