package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reglet-dev/envseal/internal/application/dto"
	apperrors "github.com/reglet-dev/envseal/internal/application/errors"
	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/reglet-dev/envseal/internal/domain/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redactedDoc = `{
  "resources": [
    {"_id": "env_b", "_type": "environment", "name": "Staging", "metaSortKey": 2,
     "data": {"token": {"_secret": "******"}}},
    {"_id": "env_a", "_type": "environment", "name": "Base", "metaSortKey": 1,
     "data": {"password": {"_secret": "******", "hint": "x"}}}
  ]
}`

func parseDoc(t *testing.T, data string) *entities.Document {
	t.Helper()
	doc, err := entities.ParseDocument([]byte(data))
	require.NoError(t, err)
	return doc
}

func secretOf(t *testing.T, doc *entities.Document, envID, field string) string {
	t.Helper()
	resource, ok := doc.FindResource(envID)
	require.True(t, ok, "resource %s", envID)
	fv, ok := resource.ClassifiedField(field)
	require.True(t, ok, "field %s", field)
	return fv.Secret()
}

func restore(t *testing.T, restorer *SecretRestorer, doc, live *entities.Document) ([]dto.ResolvedSecret, error) {
	t.Helper()
	secrets := services.NewSecretLocator().Locate(doc)
	return restorer.Restore(context.Background(), "ws1", doc, secrets, live)
}

func TestSecretRestorer_Precedence(t *testing.T) {
	kv := newFakeStore(
		"ws1:env_a:secret:password", "stored-pw",
		"ws1:env_b:secret:token", "stored-tok",
	)
	prompter := &fakePrompter{}
	restorer := NewSecretRestorer(NewSecretStore(kv), prompter, false, nil)

	live := parseDoc(t, `{"resources": [
		{"_id": "env_a", "_type": "environment", "data": {"password": {"_secret": "live-pw"}}}
	]}`)
	doc := parseDoc(t, redactedDoc)

	resolved, err := restore(t, restorer, doc, live)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	assert.Equal(t, dto.SourceLive, resolved[0].Source)
	assert.Equal(t, "live-pw", resolved[0].Value)
	assert.Equal(t, dto.SourceStore, resolved[1].Source)
	assert.Equal(t, "stored-tok", resolved[1].Value)
	assert.Empty(t, prompter.asked)

	assert.Equal(t, "live-pw", secretOf(t, doc, "env_a", "password"))
	assert.Equal(t, "stored-tok", secretOf(t, doc, "env_b", "token"))
	assert.Equal(t, "live-pw", kv.value("ws1:env_a:secret:password"))
}

func TestSecretRestorer_PromptsInSortKeyOrder(t *testing.T) {
	kv := newFakeStore()
	prompter := &fakePrompter{answers: []string{"typed-pw", "typed-tok"}}
	restorer := NewSecretRestorer(NewSecretStore(kv), prompter, false, nil)
	doc := parseDoc(t, redactedDoc)

	resolved, err := restore(t, restorer, doc, nil)
	require.NoError(t, err)

	require.Len(t, prompter.asked, 2)
	assert.Equal(t, `Enter secret value for Environment "Base"`, prompter.asked[0].Message)
	assert.Equal(t, "password", prompter.asked[0].Opts.Label)
	assert.Equal(t, "Ok", prompter.asked[0].Opts.SubmitName)
	assert.False(t, prompter.asked[0].Opts.Cancelable)
	assert.Empty(t, prompter.asked[0].Opts.DefaultValue)
	assert.Equal(t, `Enter secret value for Environment "Staging"`, prompter.asked[1].Message)

	assert.Equal(t, dto.SourcePrompt, resolved[0].Source)
	assert.Equal(t, "typed-pw", secretOf(t, doc, "env_a", "password"))
	assert.Equal(t, "typed-tok", secretOf(t, doc, "env_b", "token"))
	assert.Equal(t, "typed-tok", kv.value("ws1:env_b:secret:token"))
	assert.Equal(t, []string{"ws1:env_a:secret:password", "ws1:env_b:secret:token"}, kv.keys())
}

func TestSecretRestorer_EqualSortKeysKeepDocumentOrder(t *testing.T) {
	prompter := &fakePrompter{answers: []string{"1", "2", "3"}}
	restorer := NewSecretRestorer(NewSecretStore(newFakeStore()), prompter, false, nil)
	doc := parseDoc(t, `{"resources": [
		{"_id": "env_z", "_type": "environment", "name": "Z", "data": {"k": {"_secret": "x"}}},
		{"_id": "env_y", "_type": "environment", "name": "Y", "data": {"k": {"_secret": "x"}, "j": {"_secret": "x"}}}
	]}`)

	resolved, err := restore(t, restorer, doc, nil)
	require.NoError(t, err)

	var refs []string
	for _, r := range resolved {
		refs = append(refs, r.Ref())
	}
	assert.Equal(t, []string{"env_z/k", "env_y/k", "env_y/j"}, refs)
}

func TestSecretRestorer_AbsentLiveFieldFallsBack(t *testing.T) {
	kv := newFakeStore("ws1:env_a:secret:password", "stored-pw", "ws1:env_b:secret:token", "stored-tok")
	restorer := NewSecretRestorer(NewSecretStore(kv), &fakePrompter{}, false, nil)

	live := parseDoc(t, `{"resources": [
		{"_id": "env_a", "_type": "environment", "data": {"other": {"_secret": "nope"}, "password": "plain"}}
	]}`)
	doc := parseDoc(t, redactedDoc)

	resolved, err := restore(t, restorer, doc, live)
	require.NoError(t, err)
	assert.Equal(t, dto.SourceStore, resolved[0].Source)
	assert.Equal(t, "stored-pw", resolved[0].Value)
}

func TestSecretRestorer_LiveMarkerKeyOverride(t *testing.T) {
	restorer := NewSecretRestorer(NewSecretStore(newFakeStore()), &fakePrompter{}, false, nil)

	live := parseDoc(t, `{"resources": [
		{"_id": "env_a", "_type": "environment", "data": {
			"insomnia_export_secrets_key": "vault",
			"password": {"vault": "from-vault"}}},
		{"_id": "env_b", "_type": "environment", "data": {"token": {"_secret": "live-tok"}}}
	]}`)
	doc := parseDoc(t, redactedDoc)

	resolved, err := restore(t, restorer, doc, live)
	require.NoError(t, err)
	assert.Equal(t, "from-vault", resolved[0].Value)
	assert.Equal(t, "live-tok", resolved[1].Value)
}

func TestSecretRestorer_ConfirmAll(t *testing.T) {
	kv := newFakeStore("ws1:env_b:secret:token", "stored-tok")
	prompter := &fakePrompter{answers: []string{"confirmed-pw", "stored-tok"}}
	restorer := NewSecretRestorer(NewSecretStore(kv), prompter, true, nil)

	live := parseDoc(t, `{"resources": [
		{"_id": "env_a", "_type": "environment", "data": {"password": {"_secret": "live-pw"}}}
	]}`)
	doc := parseDoc(t, redactedDoc)

	resolved, err := restore(t, restorer, doc, live)
	require.NoError(t, err)

	require.Len(t, prompter.asked, 2)
	assert.Equal(t, "live-pw", prompter.asked[0].Opts.DefaultValue)
	assert.Equal(t, "stored-tok", prompter.asked[1].Opts.DefaultValue)
	assert.Equal(t, dto.SourcePrompt, resolved[0].Source)
	assert.Equal(t, "confirmed-pw", kv.value("ws1:env_a:secret:password"))
}

func TestSecretRestorer_PromptFailure(t *testing.T) {
	abort := errors.New("terminal is not interactive")
	kv := newFakeStore()
	restorer := NewSecretRestorer(NewSecretStore(kv), &fakePrompter{err: abort}, false, nil)
	doc := parseDoc(t, redactedDoc)

	_, err := restore(t, restorer, doc, nil)
	require.Error(t, err)

	var resErr *apperrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "env_a", resErr.EnvID)
	assert.Equal(t, "password", resErr.Field)
	assert.ErrorIs(t, err, abort)

	assert.Equal(t, entities.ObfuscatedValue, secretOf(t, doc, "env_a", "password"))
	assert.Empty(t, kv.keys())
}
