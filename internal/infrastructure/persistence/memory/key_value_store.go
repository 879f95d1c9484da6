// Package memory provides an in-memory key-value store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore keeps entries in memory in insertion order.
// Useful for testing and ephemeral runs.
type KeyValueStore struct {
	values map[string]string
	order  []string
	mu     sync.RWMutex
}

// NewKeyValueStore creates a new in-memory store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		values: make(map[string]string),
	}
}

// GetItem returns the value stored under key.
func (s *KeyValueStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// SetItem stores value under key. Overwriting keeps the original position.
func (s *KeyValueStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	return nil
}

// RemoveItem deletes key. Removing a missing key is a no-op.
func (s *KeyValueStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == key })
	return nil
}

// All returns a snapshot of every entry.
func (s *KeyValueStore) All(_ context.Context) ([]ports.StoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]ports.StoreEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, ports.StoreEntry{Key: key, Value: s.values[key]})
	}
	return entries, nil
}
