package memory

import (
	"sync"

	"github.com/Na1awut/NDLP/internal/domain"
)

type StateStore struct {
	mu     sync.RWMutex
	states map[domain.UserID]*domain.State
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[domain.UserID]*domain.State),
	}
}

// GetState returns nil for unknown users; the service substitutes a fresh
// initial state.
func (s *StateStore) GetState(userID domain.UserID) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil, nil
	}
	cp := state.Clone()
	return &cp, nil
}

func (s *StateStore) SaveState(userID domain.UserID, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := state.Clone()
	s.states[userID] = &cp
	return nil
}
