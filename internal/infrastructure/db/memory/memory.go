// Package memory provides an in-process snapshot store. It is the default
// backend so the simulator runs with zero external services, and it doubles
// as the store used throughout the test suite.
package memory

import (
	"context"
	"sync"

	"github.com/admindesk/directory-system/internal/core/domain"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSnapshotMissing
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := make([]byte, len(value))
	copy(clone, value)
	s.data[key] = clone
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}
