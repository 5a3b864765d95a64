package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/tinybank/backend/internal/ledger"
	"go.uber.org/zap"
)

// ReconciliationReport is the outcome of one reconciliation run.
type ReconciliationReport struct {
	Accounts      int                  `json:"accounts"`
	Discrepancies []ledger.Discrepancy `json:"discrepancies"`
	TotalBalance  decimal.Decimal      `json:"totalBalance"`
}

// ReconciliationService checks that every account balance equals its opening
// balance plus the signed sum of its entries.
type ReconciliationService struct {
	accounts *ledger.AccountTable
	log      *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
	last *ReconciliationReport
}

func NewReconciliationService(accounts *ledger.AccountTable, log *zap.Logger) *ReconciliationService {
	log = log.Named("reconciliation")
	cronLogger := cron.PrintfLogger(zap.NewStdLog(log))

	return &ReconciliationService{
		accounts: accounts,
		log:      log,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
	}
}

// Run reconciles every registered account once.
func (s *ReconciliationService) Run(ctx context.Context) (ReconciliationReport, error) {
	report := ReconciliationReport{Discrepancies: []ledger.Discrepancy{}, TotalBalance: decimal.Zero}

	for _, acc := range s.accounts.All() {
		if err := ctx.Err(); err != nil {
			return ReconciliationReport{}, err
		}

		d, ok := acc.Reconcile()
		report.Accounts++
		report.TotalBalance = report.TotalBalance.Add(d.Balance)
		if !ok {
			report.Discrepancies = append(report.Discrepancies, d)
			s.log.Error("balance does not match entries",
				zap.Stringer("account_id", d.AccountID),
				zap.Stringer("balance", d.Balance),
				zap.Stringer("expected", d.Expected),
				zap.Int("entries", d.Entries))
		}
	}

	s.log.Info("reconciliation finished",
		zap.Int("accounts", report.Accounts),
		zap.Int("discrepancies", len(report.Discrepancies)),
		zap.Stringer("total_balance", report.TotalBalance))

	s.mu.Lock()
	s.last = &report
	s.mu.Unlock()

	return report, nil
}

// LastReport returns the report of the most recent run, if any.
func (s *ReconciliationService) LastReport() (ReconciliationReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return ReconciliationReport{}, false
	}
	return *s.last, true
}

// Schedule registers a periodic run using a cron spec such as "@every 5m".
func (s *ReconciliationService) Schedule(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Run(context.Background()); err != nil {
			s.log.Error("scheduled reconciliation failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reconciliation schedule %q: %w", spec, err)
	}

	s.log.Info("scheduled reconciliation job", zap.String("schedule", spec))
	return nil
}

func (s *ReconciliationService) Start() {
	s.cron.Start()
}

// Stop stops the scheduler; the returned context is done once a running job
// has finished.
func (s *ReconciliationService) Stop() context.Context {
	return s.cron.Stop()
}

// Shutdown stops the scheduler and waits for a running job until ctx is done.
func (s *ReconciliationService) Shutdown(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		s.log.Warn("reconciliation still running at shutdown deadline")
		return ctx.Err()
	}
}
