// Package ports defines interfaces for the host collaborators the core calls.
// These are the "ports" in hexagonal architecture: abstractions that the
// application layer depends on but doesn't implement.
package ports

import (
	"context"
	"errors"
)

// ErrWorkspaceNotFound is returned by a WorkspaceSource that has no such workspace.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceRef identifies the workspace an action runs against.
type WorkspaceRef struct {
	ID   string
	Name string
}

// ExportOptions mirrors the host export call.
type ExportOptions struct {
	Format         string
	Workspace      WorkspaceRef
	IncludePrivate bool
}

// ImportOptions mirrors the host raw import call.
type ImportOptions struct {
	WorkspaceID string
}

// WorkspaceSource serializes a live workspace.
type WorkspaceSource interface {
	Export(ctx context.Context, opts ExportOptions) ([]byte, error)
}

// WorkspaceSink hands a serialized document back to the host.
type WorkspaceSink interface {
	ImportRaw(ctx context.Context, document []byte, opts ImportOptions) error
}

// StoreEntry is one item of the plugin key-value store.
type StoreEntry struct {
	Key   string
	Value string
}

// KeyValueStore is the host's durable, plugin-scoped store.
// Each operation is atomic per key.
type KeyValueStore interface {
	// GetItem returns the value and whether it exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	All(ctx context.Context) ([]StoreEntry, error)
}

// PromptOptions configures a single operator prompt.
type PromptOptions struct {
	Label        string
	DefaultValue string
	SubmitName   string
	Cancelable   bool
}

// Prompter asks the operator for a value.
type Prompter interface {
	Prompt(ctx context.Context, message string, opts PromptOptions) (string, error)
}

// FileFilter restricts a dialog to some file extensions.
type FileFilter struct {
	Name       string
	Extensions []string
}

// JSONFilter is the only filter the actions use.
var JSONFilter = FileFilter{Name: "JSON", Extensions: []string{"json"}}

// DialogOptions configures a file dialog.
type DialogOptions struct {
	Title       string
	ButtonLabel string
	DefaultPath string
	Filters     []FileFilter
}

// SaveDialogResult is the outcome of a save dialog.
type SaveDialogResult struct {
	FilePath string
	Canceled bool
}

// OpenDialogResult is the outcome of an open dialog.
type OpenDialogResult struct {
	FilePaths []string
	Canceled  bool
}

// FileDialogs lets the operator choose files.
type FileDialogs interface {
	ShowSaveDialog(ctx context.Context, opts DialogOptions) (SaveDialogResult, error)
	ShowOpenDialog(ctx context.Context, opts DialogOptions) (OpenDialogResult, error)
}

// FileSystem reads and writes UTF-8 text files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// DocumentValidator checks the shape of a serialized document.
type DocumentValidator interface {
	Validate(document []byte) error
}

// LeakFinding is a value that looks like a secret but is not tagged as one.
type LeakFinding struct {
	EnvID  string
	Field  string
	RuleID string
}

// LeakScanner detects secret-looking text.
type LeakScanner interface {
	// Scan returns the ids of the rules matching value.
	Scan(value string) []string
}
