// Package memory implements store.PlanStore in process, grounded on the
// teacher's pkg/adapters/memory.Store: a mutex-guarded map holding each
// checkpoint by value. The copy is shallow: a Checkpoint's slices, map and
// Result pointer stay shared with the caller.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store"
)

// Store is an in-memory store.PlanStore. Safe for concurrent use. Used by
// tests; the CLI keeps its sessions in store/file.
type Store struct {
	mu   sync.RWMutex
	data map[string]search.Checkpoint
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]search.Checkpoint)}
}

func (s *Store) Save(ctx context.Context, sessionID string, cp search.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = cp
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (search.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.data[sessionID]
	if !ok {
		return search.Checkpoint{}, store.ErrSessionNotFound
	}
	return cp, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for id := range s.data {
		out = append(out, id)
	}
	return out, nil
}
