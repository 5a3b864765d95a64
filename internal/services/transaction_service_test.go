package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tinybank/backend/internal/audit"
	"github.com/tinybank/backend/internal/events"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTransactionService_Deposit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", 1, "")
	accID := alice.AccountIDs[0]

	t.Run("successful deposit", func(t *testing.T) {
		status := f.transactions.Deposit(ctx, "alice", accID, mustDecimal("150"))
		assert.True(t, status.Successful)
		assert.Empty(t, status.ErrorMessage)

		balance, _ := f.accounts.GetBalance("alice", accID)
		assert.Equal(t, "150", balance.Value.String())
	})

	tests := []struct {
		name    string
		key     string
		account uuid.UUID
		amount  string
		message string
	}{
		{name: "unknown user", key: "nobody", account: accID, amount: "1", message: "user not found"},
		{name: "unknown account", key: "alice", account: uuid.New(), amount: "1", message: "account not found"},
		{name: "zero amount", key: "alice", account: accID, amount: "0", message: "invalid amount"},
		{name: "negative amount", key: "alice", account: accID, amount: "-5", message: "invalid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := f.transactions.Deposit(ctx, tt.key, tt.account, mustDecimal(tt.amount))
			assert.True(t, status.IsFailure())
			assert.Contains(t, status.ErrorMessage, tt.message)
		})
	}

	balance, _ := f.accounts.GetBalance("alice", accID)
	assert.Equal(t, "150", balance.Value.String(), "failed deposits do not touch the balance")
}

func TestTransactionService_Withdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", 1, "150")
	accID := alice.AccountIDs[0]

	status := f.transactions.Withdraw(ctx, "alice", accID, mustDecimal("150"))
	assert.True(t, status.Successful)

	status = f.transactions.Withdraw(ctx, "alice", accID, mustDecimal("150"))
	assert.True(t, status.IsFailure())
	assert.Contains(t, status.ErrorMessage, "insufficient funds")

	history, err := f.transactions.GetAccountHistory("alice", accID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.DirectionInbound, history[0].Direction)
	assert.Equal(t, models.DirectionOutbound, history[1].Direction)
	assert.True(t, history[1].BalanceAfter.IsZero())
}

func TestTransactionService_SubmitTransfer(t *testing.T) {
	t.Run("between users", func(t *testing.T) {
		f := newFixture(t)
		alice := f.user(t, "alice", 1, "100")
		bob := f.user(t, "bob", 1, "")

		res, err := f.transactions.SubmitTransfer(context.Background(), models.TransferRequest{
			Amount:             mustDecimal("30"),
			ProviderKey:        "alice",
			ProviderAccountID:  alice.AccountIDs[0],
			RecipientKey:       "bob",
			RecipientAccountID: bob.AccountIDs[0],
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.PathInterUser, res.Path)

		from, _ := f.accounts.GetBalance("alice", alice.AccountIDs[0])
		to, _ := f.accounts.GetBalance("bob", bob.AccountIDs[0])
		assert.Equal(t, "70", from.Value.String())
		assert.Equal(t, "30", to.Value.String())

		out, _ := f.transactions.GetAccountHistory("alice", alice.AccountIDs[0])
		in, _ := f.transactions.GetAccountHistory("bob", bob.AccountIDs[0])
		require.Len(t, out, 2)
		require.Len(t, in, 1)
		assert.Equal(t, res.TransactionID, out[1].ID)
		assert.Equal(t, res.TransactionID, in[0].ID)
		assert.Equal(t, out[1].Date, in[0].Date)
		assert.Equal(t, bob.AccountIDs[0], *out[1].Counterparty)
		assert.Equal(t, alice.AccountIDs[0], *in[0].Counterparty)
	})

	t.Run("between own accounts", func(t *testing.T) {
		f := newFixture(t)
		alice := f.user(t, "alice", 2, "100")

		res, err := f.transactions.SubmitTransfer(context.Background(), models.TransferRequest{
			Amount:             mustDecimal("100"),
			ProviderKey:        "alice",
			ProviderAccountID:  alice.AccountIDs[0],
			RecipientKey:       "alice",
			RecipientAccountID: alice.AccountIDs[1],
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.PathIntraUser, res.Path)

		balances, _ := f.accounts.GetAllBalances("alice")
		assert.True(t, balances[0].Value.IsZero())
		assert.Equal(t, "100", balances[1].Value.String())
	})

	t.Run("rejected transfer", func(t *testing.T) {
		f := newFixture(t)
		alice := f.user(t, "alice", 1, "5")
		bob := f.user(t, "bob", 1, "")

		_, err := f.transactions.SubmitTransfer(context.Background(), models.TransferRequest{
			Amount:             mustDecimal("6"),
			ProviderKey:        "alice",
			ProviderAccountID:  alice.AccountIDs[0],
			RecipientKey:       "bob",
			RecipientAccountID: bob.AccountIDs[0],
		})
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

		assert.Len(t, f.published.Events(), 1, "only the funding deposit was published")
	})
}

func TestTransactionService_History(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice", 2, "10")

	all, err := f.transactions.GetAllHistory("alice")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, alice.AccountIDs[0], all[0].AccountID)
	assert.Len(t, all[0].Entries, 1)
	assert.Empty(t, all[1].Entries)

	_, err = f.transactions.GetAllHistory("nobody")
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)

	_, err = f.transactions.GetAccountHistory("alice", uuid.New())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestTransactionService_PublishesEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", 1, "50")
	bob := f.user(t, "bob", 1, "")

	f.transactions.Withdraw(ctx, "alice", alice.AccountIDs[0], mustDecimal("5"))
	res, err := f.transactions.SubmitTransfer(ctx, models.TransferRequest{
		Amount:             mustDecimal("20"),
		ProviderKey:        "alice",
		ProviderAccountID:  alice.AccountIDs[0],
		RecipientKey:       "bob",
		RecipientAccountID: bob.AccountIDs[0],
	})
	require.NoError(t, err)

	published := f.published.Events()
	require.Len(t, published, 4)

	assert.Equal(t, events.EventDeposit, published[0].Type)
	assert.Equal(t, "50", published[0].BalanceAfter.String())
	assert.Nil(t, published[0].CounterpartyAccountID)

	assert.Equal(t, events.EventWithdrawal, published[1].Type)
	assert.Equal(t, "45", published[1].BalanceAfter.String())

	debit, credit := published[2], published[3]
	assert.Equal(t, events.EventTransfer, debit.Type)
	assert.Equal(t, res.TransactionID, debit.TransactionID)
	assert.Equal(t, res.TransactionID, credit.TransactionID)
	assert.Equal(t, alice.AccountIDs[0], debit.AccountID)
	assert.Equal(t, "25", debit.BalanceAfter.String())
	assert.Equal(t, bob.AccountIDs[0], credit.AccountID)
	assert.Equal(t, "20", credit.BalanceAfter.String())
}

func TestTransactionService_PublishFailureDoesNotFailMutation(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Type == events.EventDeposit
	})).Return(errors.New("broker down"))

	f := newFixtureWithPublisher(t, publisher)
	ctx := context.Background()
	u, err := f.users.CreateUser(ctx, "Alice", "alice", mustDate("1990-04-21"))
	require.NoError(t, err)
	u, err = f.accounts.CreateAccount(ctx, u.Key)
	require.NoError(t, err)

	status := f.transactions.Deposit(ctx, "alice", u.AccountIDs[0], mustDecimal("10"))
	assert.True(t, status.Successful)

	balance, _ := f.accounts.GetBalance("alice", u.AccountIDs[0])
	assert.Equal(t, "10", balance.Value.String())
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestTransactionService_PublishSurvivesCanceledRequest(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	f := newFixtureWithPublisher(t, publisher)
	u, err := f.users.CreateUser(context.Background(), "Alice", "alice", mustDate("1990-04-21"))
	require.NoError(t, err)
	u, err = f.accounts.CreateAccount(context.Background(), u.Key)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := f.transactions.Deposit(ctx, "alice", u.AccountIDs[0], mustDecimal("1"))
	assert.True(t, status.Successful)
	publisher.AssertExpectations(t)
}

func TestTransactionService_ConcurrentTransfersConserveMoney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keys := []string{"alice", "bob", "carol"}
	accounts := make(map[string]uuid.UUID, len(keys))
	for _, k := range keys {
		u := f.user(t, k, 1, "100")
		accounts[k] = u.AccountIDs[0]
	}

	var wg sync.WaitGroup
	for i := 0; i < 300; i++ {
		from := keys[i%3]
		to := keys[(i+1)%3]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.transactions.SubmitTransfer(ctx, models.TransferRequest{
				Amount:             mustDecimal("7"),
				ProviderKey:        from,
				ProviderAccountID:  accounts[from],
				RecipientKey:       to,
				RecipientAccountID: accounts[to],
			})
			if err != nil {
				assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
			}
		}()
	}
	wg.Wait()

	total := mustDecimal("0")
	for _, k := range keys {
		b, err := f.accounts.GetBalance(k, accounts[k])
		require.NoError(t, err)
		assert.False(t, b.Value.IsNegative())
		total = total.Add(b.Value)
	}
	assert.Equal(t, "300", total.String())
}

func TestTransactionService_MasksUserKeys(t *testing.T) {
	const (
		card      = "4111111111111111"
		otherCard = "5500000000000004"
	)

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	l := ledger.New(ledger.NewUserStore(), ledger.NewAccountTable())
	auditLogger := audit.NewLogger(log)
	users := NewUserService(l, auditLogger, log)
	accounts := NewAccountService(l, testBank, log)
	transactions := NewTransactionService(l, &recordingPublisher{}, auditLogger, log)
	ctx := context.Background()

	_, err := users.CreateUser(ctx, "Card Holder", card, mustDate("1990-04-21"))
	require.NoError(t, err)
	u, err := accounts.CreateAccount(ctx, card)
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, "Other Holder", otherCard, mustDate("1985-01-02"))
	require.NoError(t, err)
	other, err := accounts.CreateAccount(ctx, otherCard)
	require.NoError(t, err)

	var messages []string

	status := transactions.Withdraw(ctx, card, uuid.New(), mustDecimal("1"))
	require.True(t, status.IsFailure())
	messages = append(messages, status.ErrorMessage)

	_, err = transactions.SubmitTransfer(ctx, models.TransferRequest{
		Amount:             mustDecimal("1"),
		ProviderKey:        "4000000000000002",
		ProviderAccountID:  uuid.New(),
		RecipientKey:       otherCard,
		RecipientAccountID: other.AccountIDs[0],
	})
	require.ErrorIs(t, err, ledger.ErrUserNotFound)
	messages = append(messages, err.Error())

	_, err = users.DeactivateUser(ctx, card)
	require.NoError(t, err)

	status = transactions.Deposit(ctx, card, u.AccountIDs[0], mustDecimal("10"))
	require.True(t, status.IsFailure())
	assert.Contains(t, status.ErrorMessage, "user inactive")
	messages = append(messages, status.ErrorMessage)

	_, err = transactions.SubmitTransfer(ctx, models.TransferRequest{
		Amount:             mustDecimal("1"),
		ProviderKey:        otherCard,
		ProviderAccountID:  other.AccountIDs[0],
		RecipientKey:       card,
		RecipientAccountID: u.AccountIDs[0],
	})
	require.ErrorIs(t, err, ledger.ErrUserInactive)
	messages = append(messages, err.Error())

	_, err = accounts.CreateAccount(ctx, card)
	require.ErrorIs(t, err, ledger.ErrUserInactive)
	messages = append(messages, err.Error())

	for _, msg := range messages {
		for _, key := range []string{card, otherCard, "4000000000000002"} {
			assert.NotContains(t, msg, key)
		}
	}
	assert.Contains(t, messages[2], "************1111")

	for _, entry := range logs.All() {
		line := fmt.Sprint(entry.Message, entry.ContextMap())
		for _, key := range []string{card, otherCard, "4000000000000002"} {
			assert.NotContains(t, line, key)
		}
	}
}
