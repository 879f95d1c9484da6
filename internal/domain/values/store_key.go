// Package values contains domain value objects.
package values

import (
	"fmt"
	"strings"
)

const keySeparator = ":"

// StoreKey is a workspace-scoped key of the plugin key-value store.
//
// Layout:
//
//	{workspaceId}:filePath
//	{workspaceId}:{envId}:secret:{fieldName}
type StoreKey struct {
	value string
}

// NewStoreKey wraps a raw key read back from the store.
func NewStoreKey(raw string) StoreKey {
	return StoreKey{value: raw}
}

// FilePathKey is the key holding the last-used dialog path for a workspace.
func FilePathKey(workspaceID string) StoreKey {
	return StoreKey{value: workspaceID + keySeparator + "filePath"}
}

// SecretKey is the key holding one persisted secret.
func SecretKey(workspaceID, envID, field string) StoreKey {
	return StoreKey{value: fmt.Sprintf("%s:%s:secret:%s", workspaceID, envID, field)}
}

// String returns the raw key.
func (k StoreKey) String() string {
	return k.value
}

// IsEmpty returns true if this is the zero value.
func (k StoreKey) IsEmpty() bool {
	return k.value == ""
}

// Equals checks if two keys are equal.
func (k StoreKey) Equals(other StoreKey) bool {
	return k.value == other.value
}

// InWorkspace reports whether the key lives in the workspace's namespace.
func (k StoreKey) InWorkspace(workspaceID string) bool {
	return strings.HasPrefix(k.value, workspaceID+keySeparator)
}

// IsSecret reports whether the key holds a persisted secret.
func (k StoreKey) IsSecret() bool {
	parts := strings.SplitN(k.value, keySeparator, 4)
	return len(parts) == 4 && parts[2] == "secret"
}
