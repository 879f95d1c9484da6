package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// fakeStore keeps entries in insertion order.
type fakeStore struct {
	entries []ports.StoreEntry
	failSet error
}

func newFakeStore(kv ...string) *fakeStore {
	s := &fakeStore{}
	for i := 0; i+1 < len(kv); i += 2 {
		s.entries = append(s.entries, ports.StoreEntry{Key: kv[i], Value: kv[i+1]})
	}
	return s
}

func (s *fakeStore) index(key string) int {
	return slices.IndexFunc(s.entries, func(e ports.StoreEntry) bool { return e.Key == key })
}

func (s *fakeStore) GetItem(_ context.Context, key string) (string, bool, error) {
	if i := s.index(key); i >= 0 {
		return s.entries[i].Value, true, nil
	}
	return "", false, nil
}

func (s *fakeStore) SetItem(_ context.Context, key, value string) error {
	if s.failSet != nil {
		return s.failSet
	}
	if i := s.index(key); i >= 0 {
		s.entries[i].Value = value
		return nil
	}
	s.entries = append(s.entries, ports.StoreEntry{Key: key, Value: value})
	return nil
}

func (s *fakeStore) RemoveItem(_ context.Context, key string) error {
	if i := s.index(key); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
	return nil
}

func (s *fakeStore) All(_ context.Context) ([]ports.StoreEntry, error) {
	return slices.Clone(s.entries), nil
}

func (s *fakeStore) value(key string) string {
	v, _, _ := s.GetItem(context.Background(), key)
	return v
}

func (s *fakeStore) keys() []string {
	keys := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// fakePrompter answers prompts in order and records what it was asked.
type fakePrompter struct {
	err     error
	answers []string
	asked   []promptCall
}

type promptCall struct {
	Message string
	Opts    ports.PromptOptions
}

func (p *fakePrompter) Prompt(_ context.Context, message string, opts ports.PromptOptions) (string, error) {
	p.asked = append(p.asked, promptCall{Message: message, Opts: opts})
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", errors.New("unexpected prompt")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// fakeHost serves and receives workspace documents.
type fakeHost struct {
	exportErr  error
	documents  map[string][]byte
	imported   []byte
	importOpts ports.ImportOptions
	exportOpts []ports.ExportOptions
	imports    int
}

func (h *fakeHost) Export(_ context.Context, opts ports.ExportOptions) ([]byte, error) {
	h.exportOpts = append(h.exportOpts, opts)
	if h.exportErr != nil {
		return nil, h.exportErr
	}
	doc, ok := h.documents[opts.Workspace.ID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", opts.Workspace.ID, ports.ErrWorkspaceNotFound)
	}
	return doc, nil
}

func (h *fakeHost) ImportRaw(_ context.Context, document []byte, opts ports.ImportOptions) error {
	h.imports++
	h.imported = document
	h.importOpts = opts
	return nil
}

// fakeDialogs returns fixed results and records the options it was shown.
type fakeDialogs struct {
	savePath  string
	openPaths []string
	cancel    bool
	shown     []ports.DialogOptions
}

func (d *fakeDialogs) ShowSaveDialog(_ context.Context, opts ports.DialogOptions) (ports.SaveDialogResult, error) {
	d.shown = append(d.shown, opts)
	if d.cancel {
		return ports.SaveDialogResult{Canceled: true}, nil
	}
	return ports.SaveDialogResult{FilePath: d.savePath}, nil
}

func (d *fakeDialogs) ShowOpenDialog(_ context.Context, opts ports.DialogOptions) (ports.OpenDialogResult, error) {
	d.shown = append(d.shown, opts)
	if d.cancel {
		return ports.OpenDialogResult{Canceled: true}, nil
	}
	return ports.OpenDialogResult{FilePaths: d.openPaths}, nil
}

type fakeFS struct {
	files  map[string][]byte
	writes int
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}}
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return data, nil
}

func (f *fakeFS) WriteFile(path string, data []byte) error {
	f.writes++
	f.files[path] = slices.Clone(data)
	return nil
}

type fakeValidator struct {
	err error
}

func (v fakeValidator) Validate([]byte) error {
	return v.err
}

type fakeLeakScanner struct {
	needle string
}

func (s fakeLeakScanner) Scan(value string) []string {
	if value == s.needle {
		return []string{"generic-api-key"}
	}
	return nil
}

type fakeSensitive struct {
	values []string
}

func (s *fakeSensitive) Track(value string) {
	s.values = append(s.values, value)
}

func (s *fakeSensitive) AllValues() []string {
	return s.values
}

const workspaceDoc = `{
  "_type": "export",
  "__export_format": 4,
  "resources": [
    {"_id": "req_2", "_type": "request", "url": "https://example.test"},
    {"_id": "env_b", "_type": "environment", "name": "Staging", "metaSortKey": 2,
     "data": {"token": {"_secret": "staging-token"}, "region": "eu"}},
    {"_id": "wrk_1", "_type": "workspace", "name": "Demo"},
    {"_id": "env_a", "_type": "environment", "name": "Base", "metaSortKey": 1,
     "data": {"password": {"_secret": "hunter2", "hint": "x"}, "apiKey": "AKIA-LOOKS-SECRET"}}
  ]
}`
