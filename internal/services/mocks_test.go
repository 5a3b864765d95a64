package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tinybank/backend/internal/audit"
	"github.com/tinybank/backend/internal/config"
	"github.com/tinybank/backend/internal/events"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// recordingPublisher keeps every published event, for tests that only care
// about what was sent.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []events.LedgerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.LedgerEvent(nil), p.events...)
}

var testBank = config.LedgerConfig{Currency: "EUR", BIC: "TINYBANK"}

type fixture struct {
	ledger       *ledger.Ledger
	users        *UserService
	accounts     *AccountService
	transactions *TransactionService
	published    *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPublisher(t, &recordingPublisher{})
}

func newFixtureWithPublisher(t *testing.T, publisher events.Publisher) *fixture {
	t.Helper()
	log := zap.NewNop()
	l := ledger.New(ledger.NewUserStore(), ledger.NewAccountTable())
	auditLogger := audit.NewLogger(log)

	f := &fixture{
		ledger:       l,
		users:        NewUserService(l, auditLogger, log),
		accounts:     NewAccountService(l, testBank, log),
		transactions: NewTransactionService(l, publisher, auditLogger, log),
	}
	if rec, ok := publisher.(*recordingPublisher); ok {
		f.published = rec
	}
	return f
}

// user creates a user with n accounts, funding the first one when funds is set.
func (f *fixture) user(t *testing.T, key string, n int, funds string) models.User {
	t.Helper()
	ctx := context.Background()

	u, err := f.users.CreateUser(ctx, "user "+key, key, mustDate("1990-04-21"))
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		u, err = f.accounts.CreateAccount(ctx, key)
		require.NoError(t, err)
	}
	if funds != "" {
		status := f.transactions.Deposit(ctx, key, u.AccountIDs[0], decimal.RequireFromString(funds))
		require.True(t, status.Successful, status.ErrorMessage)
	}
	return u
}
