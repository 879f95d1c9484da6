package services

import (
	"context"
	"testing"

	"github.com/reglet-dev/envseal/internal/application/dto"
	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoWorkspace = ports.WorkspaceRef{ID: "ws1", Name: "Demo"}

type exportFixture struct {
	host      *fakeHost
	kv        *fakeStore
	dialogs   *fakeDialogs
	fs        *fakeFS
	sensitive *fakeSensitive
	uc        *ExportWorkspaceUseCase
}

func newExportFixture(kv *fakeStore, dialogs *fakeDialogs) *exportFixture {
	f := &exportFixture{
		host:      &fakeHost{documents: map[string][]byte{"ws1": []byte(workspaceDoc)}},
		kv:        kv,
		dialogs:   dialogs,
		fs:        newFakeFS(),
		sensitive: &fakeSensitive{},
	}
	f.uc = NewExportWorkspaceUseCase(
		f.host,
		NewSecretStore(kv),
		dialogs,
		f.fs,
		fakeLeakScanner{needle: "AKIA-LOOKS-SECRET"},
		f.sensitive,
		false,
		nil,
	)
	return f
}

func TestExportWorkspace_WritesRedactedSortedDocument(t *testing.T) {
	f := newExportFixture(newFakeStore(), &fakeDialogs{savePath: "/out/demo.json"})

	resp, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: demoWorkspace})
	require.NoError(t, err)
	assert.False(t, resp.Canceled)
	assert.NotEmpty(t, resp.PassID)
	assert.Equal(t, "/out/demo.json", resp.FilePath)
	assert.Equal(t, 2, resp.Secrets)
	assert.Equal(t, 2, resp.Redaction.Redacted())

	require.Len(t, f.host.exportOpts, 1)
	assert.Equal(t, "json", f.host.exportOpts[0].Format)
	assert.False(t, f.host.exportOpts[0].IncludePrivate)

	written := string(f.fs.files["/out/demo.json"])
	assert.NotContains(t, written, "hunter2")
	assert.NotContains(t, written, "staging-token")
	assert.Contains(t, written, `"_secret": "******"`)
	assert.Contains(t, written, `"hint": "x"`)

	// wrk_1, req_2, env_a, env_b sort as "1", "2", "env_a", "env_b"
	doc := parseDoc(t, written)
	var ids []string
	for _, r := range doc.Resources() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"wrk_1", "req_2", "env_a", "env_b"}, ids)

	assert.Equal(t, "hunter2", f.kv.value("ws1:env_a:secret:password"))
	assert.Equal(t, "staging-token", f.kv.value("ws1:env_b:secret:token"))
	assert.Equal(t, "/out/demo.json", f.kv.value("ws1:filePath"))
	assert.ElementsMatch(t, []string{"staging-token", "hunter2"}, f.sensitive.values)

	require.Len(t, resp.Leaks, 1)
	assert.Equal(t, ports.LeakFinding{EnvID: "env_a", Field: "apiKey", RuleID: "generic-api-key"}, resp.Leaks[0])
}

func TestExportWorkspace_DialogOptions(t *testing.T) {
	tests := []struct {
		name     string
		kv       *fakeStore
		expected string
	}{
		{name: "no stored path", kv: newFakeStore(), expected: "."},
		{name: "stored path", kv: newFakeStore("ws1:filePath", "/last/export.json"), expected: "/last/export.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExportFixture(tt.kv, &fakeDialogs{savePath: "/out.json"})
			_, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: demoWorkspace})
			require.NoError(t, err)

			require.Len(t, f.dialogs.shown, 1)
			opts := f.dialogs.shown[0]
			assert.Equal(t, "Export Workspace", opts.Title)
			assert.Equal(t, "Save", opts.ButtonLabel)
			assert.Equal(t, tt.expected, opts.DefaultPath)
			assert.Equal(t, []ports.FileFilter{ports.JSONFilter}, opts.Filters)
		})
	}
}

func TestExportWorkspace_PurgesStaleEntries(t *testing.T) {
	kv := newFakeStore(
		"ws1:filePath", "/prev.json",
		"ws1:env_gone:secret:old", "stale",
		"ws1:env_a:secret:removed", "stale",
		"ws2:env_x:secret:tok", "keep me",
	)
	f := newExportFixture(kv, &fakeDialogs{savePath: "/prev.json"})

	resp, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: demoWorkspace})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Purged)

	assert.ElementsMatch(t, []string{
		"ws1:filePath",
		"ws2:env_x:secret:tok",
		"ws1:env_b:secret:token",
		"ws1:env_a:secret:password",
	}, kv.keys())
}

func TestExportWorkspace_CancelWritesNothing(t *testing.T) {
	kv := newFakeStore("ws1:filePath", "/prev.json")
	f := newExportFixture(kv, &fakeDialogs{cancel: true})

	resp, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: demoWorkspace})
	require.NoError(t, err)
	assert.True(t, resp.Canceled)
	assert.Empty(t, resp.FilePath)

	assert.Zero(t, f.fs.writes)
	assert.Equal(t, "/prev.json", kv.value("ws1:filePath"))
	// Secrets are persisted before the dialog opens.
	assert.Equal(t, "hunter2", kv.value("ws1:env_a:secret:password"))
}

func TestExportWorkspace_UnknownWorkspace(t *testing.T) {
	f := newExportFixture(newFakeStore(), &fakeDialogs{savePath: "/out.json"})

	_, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: ports.WorkspaceRef{ID: "nope"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrWorkspaceNotFound)
	assert.Empty(t, f.dialogs.shown)
}

func TestExportWorkspace_NoSecrets(t *testing.T) {
	f := newExportFixture(newFakeStore(), &fakeDialogs{savePath: "/out.json"})
	f.host.documents["ws1"] = []byte(`{"resources": [{"_id": "req_1", "_type": "request"}]}`)

	resp, err := f.uc.Execute(context.Background(), dto.ExportWorkspaceRequest{Workspace: demoWorkspace})
	require.NoError(t, err)
	assert.Zero(t, resp.Secrets)
	assert.JSONEq(t, `{"resources": [{"_id": "req_1", "_type": "request"}]}`, string(f.fs.files["/out.json"]))
}
