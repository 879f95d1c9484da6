package filesystem

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_RoundTrip(t *testing.T) {
	fs := New(afero.NewMemMapFs())

	require.NoError(t, fs.WriteFile("/exports/demo.json", []byte(`{"resources": []}`)))

	data, err := fs.ReadFile("/exports/demo.json")
	require.NoError(t, err)
	assert.Equal(t, `{"resources": []}`, string(data))

	require.NoError(t, fs.WriteFile("/exports/demo.json", []byte(`{}`)))
	data, err = fs.ReadFile("/exports/demo.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFileSystem_ReadMissing(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).ReadFile("/nope.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
