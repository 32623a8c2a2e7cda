// Package memory provides an in-process key-value store, used for tests and throwaway runs.
package memory

import (
	"context"
	"maps"
	"sync"

	"ecofinds/internal/domain/repository"
)

// Store is a map guarded by a RWMutex. Its contents vanish with the process.
type Store struct {
	mu sync.RWMutex
	m  map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{m: make(map[string]string)}
}

var _ repository.BatchStore = (*Store)(nil)

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value

	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)

	return nil
}

// Apply writes all mutations under a single lock.
func (s *Store) Apply(_ context.Context, mutations []repository.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range mutations {
		if m.Value == nil {
			delete(s.m, m.Key)

			continue
		}
		s.m[m.Key] = *m.Value
	}

	return nil
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.m)
}

func (s *Store) Close() error {
	return nil
}
