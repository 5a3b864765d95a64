package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinybank/backend/internal/models"
)

// Ledger binds the user store to the account table and implements the
// user-level operations: account creation, lookup and balance mutations.
type Ledger struct {
	users    *UserStore
	accounts *AccountTable
}

func New(users *UserStore, accounts *AccountTable) *Ledger {
	return &Ledger{users: users, accounts: accounts}
}

func (l *Ledger) Users() *UserStore {
	return l.users
}

func (l *Ledger) Accounts() *AccountTable {
	return l.accounts
}

// AddAccount opens a new account for u and returns the updated snapshot.
// It is meant to run inside UserStore.Update.
func (l *Ledger) AddAccount(u models.User) (models.User, error) {
	if u.IsInactive() {
		return models.User{}, fmt.Errorf("%w: key=%s", ErrUserInactive, models.MaskKey(u.Key))
	}

	acc := NewAccount()
	if !l.accounts.Add(acc) {
		return models.User{}, fmt.Errorf("account id collision: %s", acc.ID())
	}

	return withAccount(u, acc.ID()), nil
}

// FindAccount resolves one of u's accounts.
func (l *Ledger) FindAccount(u models.User, accountID uuid.UUID) (*Account, error) {
	if !u.HasAccount(accountID) {
		return nil, fmt.Errorf("%w: account with id=%s not found for user=%s", ErrAccountNotFound, accountID, models.MaskKey(u.Key))
	}

	acc, ok := l.accounts.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: account with id=%s is not registered", ErrAccountNotFound, accountID)
	}
	return acc, nil
}

// UserAccounts resolves all of u's accounts in the order they were opened.
func (l *Ledger) UserAccounts(u models.User) ([]*Account, error) {
	out := make([]*Account, 0, len(u.AccountIDs))
	for _, id := range u.AccountIDs {
		acc, err := l.FindAccount(u, id)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

func (l *Ledger) Deposit(u models.User, accountID uuid.UUID, amount decimal.Decimal) (models.Entry, error) {
	if u.IsInactive() {
		return models.Entry{}, fmt.Errorf("%w: key=%s", ErrUserInactive, models.MaskKey(u.Key))
	}

	acc, err := l.FindAccount(u, accountID)
	if err != nil {
		return models.Entry{}, err
	}
	return acc.Deposit(amount)
}

func (l *Ledger) Withdraw(u models.User, accountID uuid.UUID, amount decimal.Decimal) (models.Entry, error) {
	if u.IsInactive() {
		return models.Entry{}, fmt.Errorf("%w: key=%s", ErrUserInactive, models.MaskKey(u.Key))
	}

	acc, err := l.FindAccount(u, accountID)
	if err != nil {
		return models.Entry{}, err
	}
	return acc.Withdraw(amount)
}

// TransferBetweenOwnAccounts moves amount between two accounts of u.
func (l *Ledger) TransferBetweenOwnAccounts(u models.User, amount decimal.Decimal, fromID, toID uuid.UUID) (uuid.UUID, error) {
	if u.IsInactive() {
		return uuid.Nil, fmt.Errorf("%w: key=%s", ErrUserInactive, models.MaskKey(u.Key))
	}

	provider, err := l.FindAccount(u, fromID)
	if err != nil {
		return uuid.Nil, err
	}
	recipient, err := l.FindAccount(u, toID)
	if err != nil {
		return uuid.Nil, err
	}

	return provider.TransferTo(amount, recipient)
}
