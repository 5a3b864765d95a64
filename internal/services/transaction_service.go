package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinybank/backend/internal/audit"
	"github.com/tinybank/backend/internal/events"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/logger"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type TransactionService struct {
	ledger    *ledger.Ledger
	router    *ledger.TransferRouter
	publisher events.Publisher
	audit     *audit.Logger
	log       *zap.Logger
}

func NewTransactionService(l *ledger.Ledger, publisher events.Publisher, auditLogger *audit.Logger, log *zap.Logger) *TransactionService {
	return &TransactionService{
		ledger:    l,
		router:    ledger.NewTransferRouter(l),
		publisher: publisher,
		audit:     auditLogger,
		log:       log.Named("transactions"),
	}
}

// Deposit credits one of the user's accounts. Failures are reported in the
// returned status, never as an error.
func (s *TransactionService) Deposit(ctx context.Context, key string, accountID uuid.UUID, amount decimal.Decimal) models.OperationStatus {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return s.failed(accountID, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key)))
	}

	entry, err := s.ledger.Deposit(u, accountID, amount)
	if err != nil {
		return s.failed(accountID, err)
	}

	s.log.Info("deposit processed",
		zap.String("user", logger.MaskKey(key)),
		zap.Stringer("account_id", accountID),
		zap.Stringer("amount", amount))
	s.audit.LogDeposit(entry.ID.String(), accountID.String(), amount, entry.BalanceAfter)
	s.publish(ctx, events.EventDeposit, entry)

	return models.SuccessStatus()
}

// Withdraw debits one of the user's accounts. Failures are reported in the
// returned status, never as an error.
func (s *TransactionService) Withdraw(ctx context.Context, key string, accountID uuid.UUID, amount decimal.Decimal) models.OperationStatus {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return s.failed(accountID, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key)))
	}

	entry, err := s.ledger.Withdraw(u, accountID, amount)
	if err != nil {
		return s.failed(accountID, err)
	}

	s.log.Info("withdrawal processed",
		zap.String("user", logger.MaskKey(key)),
		zap.Stringer("account_id", accountID),
		zap.Stringer("amount", amount))
	s.audit.LogWithdrawal(entry.ID.String(), accountID.String(), amount, entry.BalanceAfter)
	s.publish(ctx, events.EventWithdrawal, entry)

	return models.SuccessStatus()
}

// SubmitTransfer moves money between two accounts of one user or of two users.
func (s *TransactionService) SubmitTransfer(ctx context.Context, req models.TransferRequest) (ledger.TransferResult, error) {
	res, err := s.router.Process(req)
	if err != nil {
		s.log.Warn("transfer rejected",
			zap.String("provider", logger.MaskKey(req.ProviderKey)),
			zap.String("recipient", logger.MaskKey(req.RecipientKey)),
			zap.Stringer("amount", req.Amount),
			zap.Error(err))
		s.audit.LogTransfer("", req.ProviderAccountID.String(), req.RecipientAccountID.String(), req.Amount, audit.StatusFailed)
		return ledger.TransferResult{}, err
	}

	s.log.Info("transfer processed",
		zap.Stringer("transaction_id", res.TransactionID),
		zap.String("path", string(res.Path)),
		zap.Stringer("amount", req.Amount))
	s.audit.LogTransfer(res.TransactionID.String(), res.ProviderAccountID.String(), res.RecipientAccountID.String(), req.Amount, audit.StatusSuccess)

	for _, id := range []uuid.UUID{res.ProviderAccountID, res.RecipientAccountID} {
		acc, ok := s.ledger.Accounts().Get(id)
		if !ok {
			continue
		}
		entry, err := acc.FindEntry(res.TransactionID)
		if err != nil {
			s.log.Error("transfer entry missing after commit", zap.Stringer("account_id", id), zap.Error(err))
			continue
		}
		s.publish(ctx, events.EventTransfer, entry)
	}

	return res, nil
}

// GetAccountHistory returns the entries of one account, oldest first.
func (s *TransactionService) GetAccountHistory(key string, accountID uuid.UUID) ([]models.Entry, error) {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key))
	}

	acc, err := s.ledger.FindAccount(u, accountID)
	if err != nil {
		return nil, err
	}
	return acc.Entries(), nil
}

// GetAllHistory returns the entries of every account of the user.
func (s *TransactionService) GetAllHistory(key string) ([]models.AccountHistory, error) {
	u, ok := s.ledger.Users().Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key))
	}

	accounts, err := s.ledger.UserAccounts(u)
	if err != nil {
		return nil, err
	}

	out := make([]models.AccountHistory, len(accounts))
	for i, acc := range accounts {
		out[i] = models.AccountHistory{AccountID: acc.ID(), Entries: acc.Entries()}
	}
	return out, nil
}

func (s *TransactionService) failed(accountID uuid.UUID, err error) models.OperationStatus {
	s.log.Warn("operation rejected", zap.Stringer("account_id", accountID), zap.Error(err))
	s.audit.LogError("", accountID.String(), err)
	return models.FailureStatus(err.Error())
}

// publish sends the event for an already applied mutation. The request may be
// gone by now, so the publish gets its own deadline.
func (s *TransactionService) publish(ctx context.Context, eventType events.EventType, entry models.Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.LedgerEvent{
		Type:                  eventType,
		TransactionID:         entry.ID,
		AccountID:             entry.AccountID,
		CounterpartyAccountID: entry.Counterparty,
		Amount:                entry.Amount,
		BalanceAfter:          entry.BalanceAfter,
		OccurredAt:            entry.Date,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("failed to publish ledger event",
			zap.String("type", string(eventType)),
			zap.Stringer("transaction_id", entry.ID),
			zap.Error(err))
	}
}
