package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// StateStore keeps short lived OAuth state tokens for CSRF protection.
// States are single use and expire on their own.
type StateStore struct {
	cache *cache.Cache
}

func NewStateStore() *StateStore {
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &StateStore{
		cache: c,
	}
}

func (s *StateStore) Save(state string) {
	s.cache.Set(state, struct{}{}, cache.DefaultExpiration)
}

// Consume returns true when the state exists, removing it so a replayed
// callback fails.
func (s *StateStore) Consume(state string) bool {
	if _, found := s.cache.Get(state); !found {
		return false
	}
	s.cache.Delete(state)
	return true
}
