// Package host provides a file-backed stand-in for the API-client host's
// workspace export and import calls.
package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/spf13/afero"
)

// Ensure interface compliance
var (
	_ ports.WorkspaceSource = (*WorkspaceStore)(nil)
	_ ports.WorkspaceSink   = (*WorkspaceStore)(nil)
)

const workspacesDir = "workspaces"

// WorkspaceStore keeps one JSON document per workspace under
// <dataDir>/workspaces/<id>.json.
type WorkspaceStore struct {
	fs      afero.Fs
	dataDir string
}

// NewWorkspaceStore creates a workspace store rooted at dataDir.
func NewWorkspaceStore(fs afero.Fs, dataDir string) *WorkspaceStore {
	return &WorkspaceStore{fs: fs, dataDir: dataDir}
}

// Path returns the document path of a workspace.
func (s *WorkspaceStore) Path(workspaceID string) string {
	return filepath.Join(s.dataDir, workspacesDir, workspaceID+".json")
}

// Export returns the workspace document. Private environments are dropped
// unless opts.IncludePrivate is set.
func (s *WorkspaceStore) Export(_ context.Context, opts ports.ExportOptions) ([]byte, error) {
	if opts.Format != "" && opts.Format != "json" {
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if err := validateID(opts.Workspace.ID); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.Path(opts.Workspace.ID))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", opts.Workspace.ID, ports.ErrWorkspaceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %s: %w", opts.Workspace.ID, err)
	}
	if opts.IncludePrivate {
		return data, nil
	}

	doc, err := entities.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workspace %s: %w", opts.Workspace.ID, err)
	}

	resources := doc.Resources()
	public := make([]*entities.Resource, 0, len(resources))
	for _, r := range resources {
		if r.IsEnvironment() && r.IsPrivate() {
			continue
		}
		public = append(public, r)
	}
	doc.SetResources(public)

	return doc.MarshalJSON()
}

// ImportRaw replaces the workspace document, creating it when absent.
func (s *WorkspaceStore) ImportRaw(_ context.Context, document []byte, opts ports.ImportOptions) error {
	if err := validateID(opts.WorkspaceID); err != nil {
		return err
	}
	if _, err := entities.ParseDocument(document); err != nil {
		return fmt.Errorf("failed to parse imported document: %w", err)
	}

	path := s.Path(opts.WorkspaceID)
	//nolint:gosec // G301: 0o700 keeps workspace data private
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, document, 0o600); err != nil {
		return fmt.Errorf("failed to write workspace %s: %w", opts.WorkspaceID, err)
	}
	return nil
}

// Workspaces lists the known workspaces sorted by id.
func (s *WorkspaceStore) Workspaces(_ context.Context) ([]ports.WorkspaceRef, error) {
	dir := filepath.Join(s.dataDir, workspacesDir)
	infos, err := afero.ReadDir(s.fs, dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	var refs []ports.WorkspaceRef
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		refs = append(refs, ports.WorkspaceRef{ID: id, Name: s.workspaceName(id)})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// Resolve returns the workspace with the given id, or the only known
// workspace when id is empty.
func (s *WorkspaceStore) Resolve(ctx context.Context, id string) (ports.WorkspaceRef, error) {
	if id != "" {
		if err := validateID(id); err != nil {
			return ports.WorkspaceRef{}, err
		}
		return ports.WorkspaceRef{ID: id, Name: s.workspaceName(id)}, nil
	}

	refs, err := s.Workspaces(ctx)
	if err != nil {
		return ports.WorkspaceRef{}, err
	}
	switch len(refs) {
	case 0:
		return ports.WorkspaceRef{}, fmt.Errorf("no workspaces in %s: %w", filepath.Join(s.dataDir, workspacesDir), ports.ErrWorkspaceNotFound)
	case 1:
		return refs[0], nil
	default:
		ids := make([]string, 0, len(refs))
		for _, r := range refs {
			ids = append(ids, r.ID)
		}
		return ports.WorkspaceRef{}, fmt.Errorf("several workspaces found (%s), select one with --workspace", strings.Join(ids, ", "))
	}
}

// workspaceName reads the name of the workspace resource, falling back to the id.
func (s *WorkspaceStore) workspaceName(id string) string {
	data, err := afero.ReadFile(s.fs, s.Path(id))
	if err != nil {
		return id
	}
	doc, err := entities.ParseDocument(data)
	if err != nil {
		return id
	}
	for _, r := range doc.Resources() {
		if r.Type() == "workspace" && r.Name() != "" {
			return r.Name()
		}
	}
	return id
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid workspace id %q", id)
	}
	return nil
}
