package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	body := `{"me": {"asana_token": "tok-123", "asana_workspace": "ws-1", "default_rate": "85"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	sec, err := Load(path, "me")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sec.AsanaToken)
	assert.Equal(t, "ws-1", sec.AsanaWorkspace)
	assert.Equal(t, "85", sec.DefaultRate)

	// Unknown supplier degrades to the zero value.
	sec, err = Load(path, "other")
	require.NoError(t, err)
	assert.Empty(t, sec.AsanaToken)
}

func TestLoadMissingFile(t *testing.T) {
	sec, err := Load(filepath.Join(t.TempDir(), "nope.json"), "me")
	require.NoError(t, err)
	assert.Equal(t, Secrets{}, sec)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	_, err := Load(path, "me")
	assert.Error(t, err)
}
