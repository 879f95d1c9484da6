// Package services contains application use cases.
package services

import (
	"context"
	"fmt"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/values"
)

// SecretStore persists secrets and dialog paths in the host key-value store
// under workspace-scoped composite keys.
type SecretStore struct {
	store ports.KeyValueStore
}

// NewSecretStore creates a new secret store bridge.
func NewSecretStore(store ports.KeyValueStore) *SecretStore {
	return &SecretStore{store: store}
}

// Get returns a persisted secret and whether it exists.
func (s *SecretStore) Get(ctx context.Context, workspaceID, envID, field string) (string, bool, error) {
	return s.get(ctx, values.SecretKey(workspaceID, envID, field))
}

// Set persists a secret.
func (s *SecretStore) Set(ctx context.Context, workspaceID, envID, field, value string) error {
	return s.set(ctx, values.SecretKey(workspaceID, envID, field), value)
}

// GetPath returns the last dialog path used for a workspace.
func (s *SecretStore) GetPath(ctx context.Context, workspaceID string) (string, bool, error) {
	return s.get(ctx, values.FilePathKey(workspaceID))
}

// SetPath remembers the dialog path for a workspace.
func (s *SecretStore) SetPath(ctx context.Context, workspaceID, path string) error {
	return s.set(ctx, values.FilePathKey(workspaceID), path)
}

// PurgeExcept removes every key of the workspace's namespace that is not in keep.
// Keys of other workspaces are left alone. It returns the number of removed keys.
func (s *SecretStore) PurgeExcept(ctx context.Context, workspaceID string, keep []values.StoreKey) (int, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list store entries: %w", err)
	}

	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k.String()] = true
	}

	removed := 0
	for _, entry := range entries {
		key := values.NewStoreKey(entry.Key)
		if !key.InWorkspace(workspaceID) || kept[entry.Key] {
			continue
		}
		if err := s.store.RemoveItem(ctx, entry.Key); err != nil {
			return removed, fmt.Errorf("failed to remove store entry %s: %w", entry.Key, err)
		}
		removed++
	}
	return removed, nil
}

// Entries returns the workspace's store entries in store order.
func (s *SecretStore) Entries(ctx context.Context, workspaceID string) ([]ports.StoreEntry, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list store entries: %w", err)
	}

	var scoped []ports.StoreEntry
	for _, entry := range entries {
		if values.NewStoreKey(entry.Key).InWorkspace(workspaceID) {
			scoped = append(scoped, entry)
		}
	}
	return scoped, nil
}

func (s *SecretStore) get(ctx context.Context, key values.StoreKey) (string, bool, error) {
	value, ok, err := s.store.GetItem(ctx, key.String())
	if err != nil {
		return "", false, fmt.Errorf("failed to read store entry %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *SecretStore) set(ctx context.Context, key values.StoreKey, value string) error {
	if err := s.store.SetItem(ctx, key.String(), value); err != nil {
		return fmt.Errorf("failed to write store entry %s: %w", key, err)
	}
	return nil
}
