package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserState is the lifecycle state of a user.
type UserState string

const (
	UserStateActive   UserState = "ACTIVE"
	UserStateInactive UserState = "INACTIVE"
)

// User is an immutable snapshot of a bank customer. Lifecycle changes produce
// a new snapshot; accounts are referenced by id and live in the account table.
type User struct {
	ID         uuid.UUID   `json:"uuid" example:"7f1c1a36-0a5b-4a53-9d0e-5f8a9b2f8c11"`
	Name       string      `json:"name" example:"John Doe"`
	Key        string      `json:"ccNumber" example:"4111111111111111"`
	Birthdate  time.Time   `json:"birthdate" example:"1990-04-21T00:00:00Z"`
	AccountIDs []uuid.UUID `json:"accounts"`
	State      UserState   `json:"state" example:"ACTIVE"`
}

// IsInactive reports whether the user has been deactivated.
func (u User) IsInactive() bool {
	return u.State == UserStateInactive
}

// HasAccount reports whether the user owns the given account id.
func (u User) HasAccount(accountID uuid.UUID) bool {
	for _, id := range u.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// MaskKey hides all but the last four characters of a user key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
