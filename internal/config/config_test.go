package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgray/milscope/internal/config"
)

// TestDefault verifies the built-in defaults.
func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "./milscope.db", cfg.Database.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2047, cfg.Projection.TargetYear)
	assert.Equal(t, 10, cfg.Projection.Limit)
	assert.Equal(t, "./milscope_report.xlsx", cfg.Export.Path)
}

// TestLoad_FileOverridesDefaults verifies YAML values win over defaults
// while unset sections keep them.
func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /data/mil.db
projection:
  target_year: 2035
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/mil.db", cfg.Database.Path)
	assert.Equal(t, 2035, cfg.Projection.TargetYear)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Projection.Limit)
}

// TestLoad_EnvOverrides verifies environment variables override both
// defaults and file values.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MILSCOPE_DB_PATH", "/env/mil.db")
	t.Setenv("MILSCOPE_PORT", "9090")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/mil.db", cfg.Database.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
}

// TestLoad_MissingFile verifies a bad path is a hard error.
func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
