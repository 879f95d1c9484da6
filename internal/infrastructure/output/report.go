// Package output renders pass summaries and store listings for the CLI.
package output

import (
	"sort"

	"github.com/reglet-dev/envseal/internal/application/dto"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/reglet-dev/envseal/internal/domain/values"
)

// Leak is an untagged value that looks like a secret.
type Leak struct {
	EnvID  string `json:"env_id" yaml:"env_id"`
	Field  string `json:"field" yaml:"field"`
	RuleID string `json:"rule_id" yaml:"rule_id"`
}

// Failure is a secret that could not be redacted or restored.
type Failure struct {
	Ref   string `json:"ref" yaml:"ref"`
	Error string `json:"error" yaml:"error"`
}

// PassSummary describes one export or import pass.
type PassSummary struct {
	Sources   map[string]int `json:"sources,omitempty" yaml:"sources,omitempty"`
	Action    string         `json:"action" yaml:"action"`
	PassID    string         `json:"pass_id" yaml:"pass_id"`
	Workspace string         `json:"workspace" yaml:"workspace"`
	FilePath  string         `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Leaks     []Leak         `json:"leaks,omitempty" yaml:"leaks,omitempty"`
	Failures  []Failure      `json:"failures,omitempty" yaml:"failures,omitempty"`
	Secrets   int            `json:"secrets" yaml:"secrets"`
	Purged    int            `json:"purged,omitempty" yaml:"purged,omitempty"`
	Canceled  bool           `json:"canceled" yaml:"canceled"`
}

// StoreEntry is a store item with its value masked when it is a secret.
type StoreEntry struct {
	Key   string `json:"key" yaml:"key"`
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// StoreListing is the store content of one workspace.
type StoreListing struct {
	Workspace string       `json:"workspace" yaml:"workspace"`
	Entries   []StoreEntry `json:"entries" yaml:"entries"`
}

// NewExportSummary summarizes an export response.
func NewExportSummary(ws ports.WorkspaceRef, resp *dto.ExportWorkspaceResponse) *PassSummary {
	s := &PassSummary{
		Action:    "export",
		PassID:    resp.PassID,
		Workspace: workspaceLabel(ws),
		FilePath:  resp.FilePath,
		Secrets:   resp.Secrets,
		Purged:    resp.Purged,
		Canceled:  resp.Canceled,
	}
	for _, l := range resp.Leaks {
		s.Leaks = append(s.Leaks, Leak(l))
	}
	if resp.Redaction != nil {
		for _, f := range resp.Redaction.Failed() {
			s.Failures = append(s.Failures, Failure{Ref: f.Secret.Ref(), Error: f.Err.Error()})
		}
	}
	return s
}

// NewImportSummary summarizes an import response.
func NewImportSummary(ws ports.WorkspaceRef, resp *dto.ImportWorkspaceResponse) *PassSummary {
	s := &PassSummary{
		Action:    "import",
		PassID:    resp.PassID,
		Workspace: workspaceLabel(ws),
		FilePath:  resp.FilePath,
		Secrets:   len(resp.Restored),
		Canceled:  resp.Canceled,
	}
	if counts := dto.CountBySource(resp.Restored); len(counts) > 0 {
		s.Sources = make(map[string]int, len(counts))
		for source, n := range counts {
			s.Sources[string(source)] = n
		}
	}
	return s
}

// NewStoreListing masks secret values of the given entries.
func NewStoreListing(workspace string, entries []ports.StoreEntry) *StoreListing {
	listing := &StoreListing{Workspace: workspace, Entries: make([]StoreEntry, 0, len(entries))}
	for _, e := range entries {
		key := values.NewStoreKey(e.Key)
		entry := StoreEntry{Key: e.Key, Kind: "other", Value: e.Value}
		switch {
		case key.IsSecret():
			entry.Kind = "secret"
			entry.Value = entities.ObfuscatedValue
		case key.Equals(values.FilePathKey(workspace)):
			entry.Kind = "path"
		}
		listing.Entries = append(listing.Entries, entry)
	}
	return listing
}

func workspaceLabel(ws ports.WorkspaceRef) string {
	if ws.Name == "" || ws.Name == ws.ID {
		return ws.ID
	}
	return ws.Name + " (" + ws.ID + ")"
}

func sortedSources(sources map[string]int) []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
