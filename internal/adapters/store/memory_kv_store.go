package store

import (
	"context"
	"sync"
)

// In-memory key-value store for local runs and tests.
type MemoryKeyValueStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{m: make(map[string]string)}
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryKeyValueStore) SetMany(ctx context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range entries {
		s.m[k] = v
	}
	return nil
}

// Set writes a single raw value.
func (s *MemoryKeyValueStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = value
}
