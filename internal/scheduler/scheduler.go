package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"feabscopy/internal/ledger"
)

// Scheduler runs the periodic ledger maintenance tasks. The only task
// today is the maturity sweep: flipping accounts from Active to Matured
// once their maturity date passes.
type Scheduler struct {
	cron   *cron.Cron
	ledger *ledger.Service
	log    *zap.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(log *zap.Logger, svc *ledger.Service) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		ledger: svc,
		log:    log,
	}
}

// Register adds the daily maturity sweep at midnight.
func (s *Scheduler) Register() error {
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.sweep); err != nil {
		return fmt.Errorf("register maturity sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and runs the sweep once immediately, so
// a restart never delays maturity transitions by up to a day.
func (s *Scheduler) Start() {
	s.sweep()
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) sweep() {
	matured, err := s.ledger.SweepMaturities(time.Now())
	if err != nil {
		s.log.Error("Maturity sweep failed", zap.Error(err))
		return
	}
	if matured > 0 {
		s.log.Info("Maturity sweep completed", zap.Int("matured", matured))
	}
}
