package ledger

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinybank/backend/internal/models"
)

// Account is a mutable, lock-guarded balance with its append-only entry log.
//
// The balance is only touched while holding mu for writing. Transfers hold the
// write locks of both accounts, acquired in account-id order, so two opposite
// transfers can never wait on each other.
type Account struct {
	id      uuid.UUID
	opening decimal.Decimal

	mu      sync.RWMutex
	balance decimal.Decimal
	entries []models.Entry
}

// NewAccount creates an account with a fresh id and a zero balance.
func NewAccount() *Account {
	return NewAccountWithBalance(decimal.Zero)
}

// NewAccountWithBalance creates an account holding an opening balance.
func NewAccountWithBalance(balance decimal.Decimal) *Account {
	return &Account{
		id:      uuid.New(),
		opening: balance,
		balance: balance,
	}
}

func (a *Account) ID() uuid.UUID {
	return a.id
}

// Opening returns the balance the account was created with.
func (a *Account) Opening() decimal.Decimal {
	return a.opening
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Entries returns a copy of the entry log as of the call.
func (a *Account) Entries() []models.Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Deposit credits amount and returns the inbound bank entry it recorded.
func (a *Account) Deposit(amount decimal.Decimal) (models.Entry, error) {
	if err := validateAmount(amount); err != nil {
		return models.Entry{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
	entry := models.Entry{
		ID:           uuid.New(),
		Direction:    models.DirectionInbound,
		Amount:       amount,
		BalanceAfter: a.balance,
		Date:         time.Now().UTC(),
		Description:  fmt.Sprintf("Bank personal deposit, amount=%s, balance=%s", amount, a.balance),
		AccountID:    a.id,
	}
	a.entries = append(a.entries, entry)

	return entry, nil
}

// Withdraw debits amount and returns the outbound bank entry it recorded.
func (a *Account) Withdraw(amount decimal.Decimal) (models.Entry, error) {
	if err := validateAmount(amount); err != nil {
		return models.Entry{}, err
	}

	if err := a.precheck(amount); err != nil {
		return models.Entry{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.covers(amount); err != nil {
		return models.Entry{}, err
	}

	a.balance = a.balance.Sub(amount)
	entry := models.Entry{
		ID:           uuid.New(),
		Direction:    models.DirectionOutbound,
		Amount:       amount,
		BalanceAfter: a.balance,
		Date:         time.Now().UTC(),
		Description:  fmt.Sprintf("Bank personal withdraw, amount=%s, balance=%s", amount, a.balance),
		AccountID:    a.id,
	}
	a.entries = append(a.entries, entry)

	return entry, nil
}

// TransferTo moves amount from a to recipient and returns the shared
// transaction id of the two entries it appends.
func (a *Account) TransferTo(amount decimal.Decimal, recipient *Account) (uuid.UUID, error) {
	if recipient == nil {
		return uuid.Nil, fmt.Errorf("%w: recipient is nil", ErrAccountNotFound)
	}
	if err := validateAmount(amount); err != nil {
		return uuid.Nil, err
	}
	if a.id == recipient.id {
		return uuid.Nil, fmt.Errorf("%w: account=%s", ErrSameAccount, a.id)
	}

	if err := a.precheck(amount); err != nil {
		return uuid.Nil, err
	}

	unlock := lockPair(a, recipient)
	defer unlock()

	if err := a.covers(amount); err != nil {
		return uuid.Nil, err
	}

	a.balance = a.balance.Sub(amount)
	recipient.balance = recipient.balance.Add(amount)

	txID := uuid.New()
	now := time.Now().UTC()
	description := fmt.Sprintf("Transaction from account %s to account %s", a.id, recipient.id)
	senderID, recipientID := a.id, recipient.id

	a.entries = append(a.entries, models.Entry{
		ID:           txID,
		Direction:    models.DirectionOutbound,
		Amount:       amount,
		BalanceAfter: a.balance,
		Date:         now,
		Description:  description,
		Counterparty: &recipientID,
		AccountID:    a.id,
	})
	recipient.entries = append(recipient.entries, models.Entry{
		ID:           txID,
		Direction:    models.DirectionInbound,
		Amount:       amount,
		BalanceAfter: recipient.balance,
		Date:         now,
		Description:  description,
		Counterparty: &senderID,
		AccountID:    recipient.id,
	})

	return txID, nil
}

// FindEntry returns the entry recorded under id. Both sides of a transfer
// share the id, so it resolves on either account.
func (a *Account) FindEntry(id uuid.UUID) (models.Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].ID == id {
			return a.entries[i], nil
		}
	}
	return models.Entry{}, fmt.Errorf("%w: id=%s on account=%s", ErrTransactionNotFound, id, a.id)
}

// Discrepancy describes an account whose balance no longer matches its log.
type Discrepancy struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Expected  decimal.Decimal `json:"expected"`
	Entries   int             `json:"entries"`
}

// Reconcile recomputes the balance from the opening balance and the entry log.
// It returns ok=true when both agree.
func (a *Account) Reconcile() (Discrepancy, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	expected := a.opening
	for _, e := range a.entries {
		expected = expected.Add(e.SignedAmount())
	}

	d := Discrepancy{
		AccountID: a.id,
		Balance:   a.balance,
		Expected:  expected,
		Entries:   len(a.entries),
	}
	return d, expected.Equal(a.balance)
}

// Balances returns the balances of all given accounts read under one set of
// read locks, so no in-flight transfer between them is half visible.
func Balances(accounts ...*Account) []decimal.Decimal {
	ordered := make([]*Account, 0, len(accounts))
	seen := make(map[uuid.UUID]bool, len(accounts))
	for _, acc := range accounts {
		if !seen[acc.id] {
			seen[acc.id] = true
			ordered = append(ordered, acc)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return less(ordered[i], ordered[j]) })

	for _, acc := range ordered {
		acc.mu.RLock()
	}
	out := make([]decimal.Decimal, len(accounts))
	for i, acc := range accounts {
		out[i] = acc.balance
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		ordered[i].mu.RUnlock()
	}

	return out
}

// precheck is the fast failure path; the decision that gates a mutation is
// always repeated by covers under the write lock.
func (a *Account) precheck(amount decimal.Decimal) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.covers(amount)
}

// covers must be called with a.mu held.
func (a *Account) covers(amount decimal.Decimal) error {
	if a.balance.Sub(amount).IsNegative() {
		return fmt.Errorf("%w: current balance=%s is insufficient to process amount=%s", ErrInsufficientFunds, a.balance, amount)
	}
	return nil
}

// lockPair write-locks both accounts, lower id first, and returns the release func.
func lockPair(x, y *Account) func() {
	first, second := x, y
	if less(y, x) {
		first, second = y, x
	}

	first.mu.Lock()
	second.mu.Lock()

	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func less(x, y *Account) bool {
	return bytes.Compare(x.id[:], y.id[:]) < 0
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount=%s must be greater than 0", ErrInvalidAmount, amount)
	}
	return nil
}
