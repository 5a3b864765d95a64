package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/tinybank/backend/internal/models"
)

// NewUser returns an active user without accounts.
func NewUser(name, key string, birthdate time.Time) models.User {
	return models.User{
		ID:         uuid.New(),
		Name:       name,
		Key:        key,
		Birthdate:  birthdate,
		AccountIDs: []uuid.UUID{},
		State:      models.UserStateActive,
	}
}

// Deactivate returns an inactive copy of u. An inactive user is returned as is.
func Deactivate(u models.User) models.User {
	if u.IsInactive() {
		return u
	}

	next := u
	next.AccountIDs = cloneIDs(u.AccountIDs)
	next.State = models.UserStateInactive
	return next
}

// withAccount returns a copy of u owning one more account id. The copy never
// shares its backing array with u.
func withAccount(u models.User, accountID uuid.UUID) models.User {
	ids := make([]uuid.UUID, len(u.AccountIDs), len(u.AccountIDs)+1)
	copy(ids, u.AccountIDs)

	next := u
	next.AccountIDs = append(ids, accountID)
	return next
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}
