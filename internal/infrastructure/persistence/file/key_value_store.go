// Package file provides a YAML file-backed key-value store.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/spf13/afero"
)

// Ensure interface compliance
var _ ports.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore persists entries to a single YAML file.
// Every write rewrites the whole file with mode 0600.
type KeyValueStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewKeyValueStore creates a store backed by path on fs.
func NewKeyValueStore(fs afero.Fs, path string) *KeyValueStore {
	return &KeyValueStore{fs: fs, path: path}
}

// Path returns the backing file path.
func (s *KeyValueStore) Path() string {
	return s.path
}

// storeFile represents the YAML structure of the store file.
type storeFile struct {
	Entries []storeEntry `yaml:"entries"`
}

type storeEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// GetItem returns the value stored under key.
func (s *KeyValueStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	if i := indexOf(entries, key); i >= 0 {
		return entries[i].Value, true, nil
	}
	return "", false, nil
}

// SetItem stores value under key. Overwriting keeps the original position.
func (s *KeyValueStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if i := indexOf(entries, key); i >= 0 {
		entries[i].Value = value
	} else {
		entries = append(entries, storeEntry{Key: key, Value: value})
	}
	return s.save(entries)
}

// RemoveItem deletes key. Removing a missing key does not touch the file.
func (s *KeyValueStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(entries, key)
	if i < 0 {
		return nil
	}
	return s.save(slices.Delete(entries, i, i+1))
}

// All returns every entry in file order.
func (s *KeyValueStore) All(_ context.Context) ([]ports.StoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]ports.StoreEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ports.StoreEntry{Key: e.Key, Value: e.Value})
	}
	return out, nil
}

// load reads the store file. A missing file is an empty store.
func (s *KeyValueStore) load() ([]storeEntry, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var f storeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return f.Entries, nil
}

func (s *KeyValueStore) save(entries []storeEntry) error {
	//nolint:gosec // G301: 0o700 keeps the store directory private
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := yaml.MarshalWithOptions(storeFile{Entries: entries}, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal store to YAML: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

func indexOf(entries []storeEntry, key string) int {
	return slices.IndexFunc(entries, func(e storeEntry) bool { return e.Key == key })
}
