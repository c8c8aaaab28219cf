package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "stores", cfg.StoresDir)
	assert.Equal(t, uint32(100), cfg.Logo.MinSize)
	assert.Equal(t, uint32(400), cfg.Logo.MaxSize)
	assert.True(t, cfg.Checks.JSONFiles)
	assert.True(t, cfg.Checks.MissingFiles)
	assert.Zero(t, cfg.Workers)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
data_dir: /srv/catalog/data
workers: 4
logo:
  min_size: 64
checks:
  gtin: false
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog/data", cfg.DataDir)
	assert.Equal(t, "stores", cfg.StoresDir, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, uint32(64), cfg.Logo.MinSize)
	assert.Equal(t, uint32(400), cfg.Logo.MaxSize)
	assert.False(t, cfg.Checks.GTIN)
	assert.True(t, cfg.Checks.Logos, "sibling checks keep defaults")
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("data_dri: typo\n"))
	require.Error(t, err)
}

func TestParseRejectsInvertedLogoBounds(t *testing.T) {
	_, err := Parse([]byte("logo:\n  min_size: 500\n  max_size: 400\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_size")
}

func TestParseRejectsNegativeWorkers(t *testing.T) {
	_, err := Parse([]byte("workers: -2\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
