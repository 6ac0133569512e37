package cache

import (
	"context"
	"sync"

	"library-cms/internal/domain/maintenance"
)

// MemoryStore keeps the maintenance flag in process memory.
// It is used when no Redis address is configured.
type MemoryStore struct {
	state maintenance.State
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (maintenance.State, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state, nil
}

func (s *MemoryStore) Set(_ context.Context, state maintenance.State) error {
	s.mutex.Lock()
	s.state = state
	s.mutex.Unlock()
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
