package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tinybank/backend/internal/models"
)

// UserStore maps a user's external key to its latest snapshot.
//
// Update runs the transform inside the store's critical section, so two
// updates of the same key never both start from the same snapshot.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Get(key string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[key]
	return u, ok
}

// Insert stores u unless its key is already present and reports whether it did.
func (s *UserStore) Insert(u models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Key]; ok {
		return false
	}
	s.users[u.Key] = u
	return true
}

// Update replaces the user stored under key with fn's result. When the key is
// absent fn is not called and ErrUserNotFound is returned. When fn fails the
// stored snapshot is left as it was.
func (s *UserStore) Update(key string, fn func(models.User) (models.User, error)) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[key]
	if !ok {
		return models.User{}, fmt.Errorf("%w: key=%s", ErrUserNotFound, models.MaskKey(key))
	}

	next, err := fn(current)
	if err != nil {
		return models.User{}, err
	}

	s.users[key] = next
	return next, nil
}

// Keys returns all user keys in lexical order.
func (s *UserStore) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.users))
	for k := range s.users {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
