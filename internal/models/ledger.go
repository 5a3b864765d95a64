package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether an entry credited or debited its account.
type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

// Signal returns the sign used when rendering an amount in this direction.
func (d Direction) Signal() string {
	if d == DirectionOutbound {
		return "-"
	}
	return "+"
}

// Entry is an immutable record of one balance change on one account.
// Both sides of a transfer carry the same ID and Date.
type Entry struct {
	ID           uuid.UUID       `json:"id"`
	Direction    Direction       `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfterTransaction"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Counterparty *uuid.UUID      `json:"counterpartyAccountId,omitempty"` // nil for bank deposits and withdrawals
	AccountID    uuid.UUID       `json:"accountId"`
}

// IsTransfer reports whether the entry is one side of an account-to-account transfer.
func (e Entry) IsTransfer() bool {
	return e.Counterparty != nil
}

// SignedAmount returns the amount as it affects the owning account's balance.
func (e Entry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionOutbound {
		return e.Amount.Neg()
	}
	return e.Amount
}

// AccountBalance is the balance view of one account.
type AccountBalance struct {
	AccountID uuid.UUID       `json:"accountId"`
	UserKey   string          `json:"userId"`
	Value     decimal.Decimal `json:"value"`
}

// AccountHistory groups the entries of one account.
type AccountHistory struct {
	AccountID uuid.UUID `json:"accountId"`
	Entries   []Entry   `json:"transactionRecords"`
}
