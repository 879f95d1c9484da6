package services

import (
	"testing"

	"github.com/reglet-dev/envseal/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redactableDocument = `{"resources": [
	{"_id": "env_1", "_type": "environment", "name": "Base", "data": {
		"token": {"_secret": "s3cr3t"},
		"host": "example.com"
	}}
]}`

func Test_SecretRedactor_Redact(t *testing.T) {
	doc := mustParse(t, redactableDocument)
	secrets := NewSecretLocator().Locate(doc)

	report := NewSecretRedactor().Redact(doc, secrets)
	assert.Equal(t, 1, report.Redacted())
	assert.Empty(t, report.Failed())

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "s3cr3t")
	assert.Contains(t, string(out), `"_secret": "******"`)
	assert.Contains(t, string(out), `"host": "example.com"`)
}

func Test_SecretRedactor_Idempotent(t *testing.T) {
	doc := mustParse(t, redactableDocument)
	redactor := NewSecretRedactor()

	redactor.Redact(doc, NewSecretLocator().Locate(doc))
	first, err := doc.Encode()
	require.NoError(t, err)

	again := NewSecretLocator().Locate(doc)
	require.Len(t, again, 1)
	assert.Equal(t, entities.ObfuscatedValue, again[0].Value)

	redactor.Redact(doc, again)
	second, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func Test_SecretRedactor_BestEffort(t *testing.T) {
	doc := mustParse(t, redactableDocument)
	secrets := []entities.LocatedSecret{
		{EnvID: "env_gone", Field: "token", Value: "a"},
		{EnvID: "env_1", Field: "missing", Value: "b"},
		{EnvID: "env_1", Field: "host", Value: "c"},
		{EnvID: "env_1", Field: "token", Value: "s3cr3t"},
	}

	report := NewSecretRedactor().Redact(doc, secrets)
	require.Len(t, report.Results, 4)
	assert.Equal(t, 1, report.Redacted())

	failed := report.Failed()
	require.Len(t, failed, 3)
	assert.ErrorIs(t, failed[0].Err, entities.ErrResourceNotFound)
	assert.ErrorIs(t, failed[1].Err, entities.ErrFieldNotFound)
	assert.ErrorIs(t, failed[2].Err, entities.ErrFieldNotMapping)
	assert.True(t, report.Results[3].OK())
}
