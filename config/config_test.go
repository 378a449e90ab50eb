package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "badger", cfg.DBBackend)
	assert.Equal(t, "skillmap.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, 0.7, cfg.Oracle.UnlockThreshold)
	assert.Equal(t, 600, cfg.GitHub.CacheTTLSeconds)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SKILLMAP_ADDR", ":9999")
	t.Setenv("SKILLMAP_LOG_LEVEL", "debug")
	t.Setenv("SKILLMAP_ORACLE__MODEL", "gpt-4o-mini")
	t.Setenv("SKILLMAP_GITHUB__BURST", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gpt-4o-mini", cfg.Oracle.Model)
	assert.Equal(t, 7, cfg.GitHub.Burst)
	// Untouched fields keep their defaults
	assert.Equal(t, "badger", cfg.DBBackend)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmap.yaml")
	content := "addr: \":7070\"\npool_size: 8\noracle:\n  model: file-model\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SKILLMAP_CONFIG", path)
	t.Setenv("SKILLMAP_ORACLE__MODEL", "env-model")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr, "file overrides defaults")
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, "env-model", cfg.Oracle.Model, "env overrides file")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("SKILLMAP_CONFIG", "/does/not/exist.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, ErrEmptyAddr},
		{"unknown backend", func(c *Config) { c.DBBackend = "sqlite" }, ErrUnknownBackend},
		{"postgres without url", func(c *Config) { c.DBBackend = "postgres" }, ErrMissingDatabaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("postgres with url", func(t *testing.T) {
		cfg := New()
		cfg.DBBackend = "postgres"
		cfg.DatabaseURL = "postgres://localhost/skillmap"
		require.NoError(t, cfg.Validate())
	})

	t.Run("zero pool size", func(t *testing.T) {
		cfg := New()
		cfg.PoolSize = 0
		require.Error(t, cfg.Validate())
	})
}
