package ledger

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// AccountTable indexes every account by id. Users only hold account ids;
// the table owns the accounts for the life of the process.
type AccountTable struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

func NewAccountTable() *AccountTable {
	return &AccountTable{accounts: make(map[uuid.UUID]*Account)}
}

// Add registers an account. It returns false if the id is already taken.
func (t *AccountTable) Add(acc *Account) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.accounts[acc.ID()]; ok {
		return false
	}
	t.accounts[acc.ID()] = acc
	return true
}

func (t *AccountTable) Get(id uuid.UUID) (*Account, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	acc, ok := t.accounts[id]
	return acc, ok
}

// All returns every account ordered by id.
func (t *AccountTable) All() []*Account {
	t.mu.RLock()
	out := make([]*Account, 0, len(t.accounts))
	for _, acc := range t.accounts {
		out = append(out, acc)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (t *AccountTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.accounts)
}
