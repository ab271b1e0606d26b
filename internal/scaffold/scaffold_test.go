package scaffold

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/contty/internal/config"
)

func TestInit_GeneratedConfigIsValid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(io.Discard, dir))

	cfg, err := config.Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCaddyfile, cfg.Caddyfile)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "app.example.com", cfg.Sites[0].Hostname)
	assert.Equal(t, "8080", cfg.Sites[0].Port)
	assert.Equal(t, "admin@example.com", cfg.Sites[0].Email)
}

func TestInit_FailsIfFileExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("sites: []\n"), 0644))

	err := Init(io.Discard, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
