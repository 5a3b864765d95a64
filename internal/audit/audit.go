package audit

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventDeposit    = "DEPOSIT"
	EventWithdrawal = "WITHDRAWAL"
	EventTransfer   = "TRANSFER"
	EventUser       = "USER"
	EventError      = "ERROR"

	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Logger writes one structured audit record per ledger mutation.
type Logger struct {
	log *zap.Logger
	now func() time.Time
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("audit"), now: time.Now}
}

func (a *Logger) LogDeposit(transactionID, accountID string, amount, balance decimal.Decimal) {
	a.write(EventDeposit, transactionID, StatusSuccess,
		zap.String("account_id", accountID),
		zap.Stringer("amount", amount),
		zap.Stringer("balance_after", balance),
	)
}

func (a *Logger) LogWithdrawal(transactionID, accountID string, amount, balance decimal.Decimal) {
	a.write(EventWithdrawal, transactionID, StatusSuccess,
		zap.String("account_id", accountID),
		zap.Stringer("amount", amount),
		zap.Stringer("balance_after", balance),
	)
}

func (a *Logger) LogTransfer(transactionID, fromAccount, toAccount string, amount decimal.Decimal, status string) {
	a.write(EventTransfer, transactionID, status,
		zap.String("from_account", fromAccount),
		zap.String("to_account", toAccount),
		zap.Stringer("amount", amount),
	)
}

// LogUser records a user lifecycle change such as CREATED or DEACTIVATED.
func (a *Logger) LogUser(maskedKey, operation string) {
	a.write(EventUser, "", StatusSuccess,
		zap.String("user", maskedKey),
		zap.String("operation", operation),
	)
}

func (a *Logger) LogError(transactionID, accountID string, err error) {
	a.write(EventError, transactionID, StatusFailed,
		zap.String("account_id", accountID),
		zap.Error(err),
	)
}

func (a *Logger) write(eventType, transactionID, status string, fields ...zap.Field) {
	base := []zap.Field{
		zap.Time("event_time", a.now()),
		zap.String("event_type", eventType),
		zap.String("status", status),
	}
	if transactionID != "" {
		base = append(base, zap.String("transaction_id", transactionID))
	}

	if status == StatusFailed {
		a.log.Warn("audit", append(base, fields...)...)
		return
	}
	a.log.Info("audit", append(base, fields...)...)
}
