package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CONFIG TESTS
// ============================================================================

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlserver", cfg.Driver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Empty(t, cfg.Tables())
	assert.Empty(t, cfg.Source)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"TABLE_OPTIONS=Sales, Stock ,,Returns\n"+
			"MAIN_TABLE=Sales\n"+
			"DB_DRIVER=sqlite\n"+
			"DB_DSN=/tmp/stats.db\n"+
			"QUERY_CACHE_TTL=90s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sales", "Stock", "Returns"}, cfg.Tables())
	assert.Equal(t, "Sales", cfg.MainTable)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "/tmp/stats.db", cfg.DSN)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, path, cfg.Source)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("MAIN_TABLE=Sales\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("MAIN_TABLE", "Stock")
	t.Setenv("TABLE_OPTIONS", "Stock")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Stock", cfg.MainTable)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"Stock"}, cfg.Tables())
}
