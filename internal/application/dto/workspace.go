// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/reglet-dev/envseal/internal/domain/services"
)

// ExportWorkspaceRequest encapsulates the inputs of an export pass.
type ExportWorkspaceRequest struct {
	Workspace ports.WorkspaceRef
}

// ExportWorkspaceResponse describes a finished export pass.
type ExportWorkspaceResponse struct {
	Redaction *services.RedactionReport
	PassID    string
	FilePath  string
	Leaks     []ports.LeakFinding
	Secrets   int
	Purged    int
	Canceled  bool
}

// ImportWorkspaceRequest encapsulates the inputs of an import pass.
type ImportWorkspaceRequest struct {
	Workspace ports.WorkspaceRef
}

// ImportWorkspaceResponse describes a finished import pass.
type ImportWorkspaceResponse struct {
	PassID   string
	FilePath string
	Restored []ResolvedSecret
	Canceled bool
}

// SecretSource tells where a restored value came from.
type SecretSource string

const (
	// SourceLive is the value already present in the live workspace.
	SourceLive SecretSource = "live"
	// SourceStore is the value persisted by an earlier pass.
	SourceStore SecretSource = "store"
	// SourcePrompt is the value entered by the operator.
	SourcePrompt SecretSource = "prompt"
)

// ResolvedSecret is a located secret with its restored plaintext.
type ResolvedSecret struct {
	Source SecretSource
	entities.LocatedSecret
}

// CountBySource tallies restored secrets per source.
func CountBySource(resolved []ResolvedSecret) map[SecretSource]int {
	counts := make(map[SecretSource]int, 3)
	for _, r := range resolved {
		counts[r.Source]++
	}
	return counts
}
