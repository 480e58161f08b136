package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wxdata/acis/internal/config"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server = "https://acis.example.org"
timeout = "90s"
cache_dir = "/tmp/acis-cache"
cache_ttl = "12h"
no_cache = false
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://acis.example.org", cfg.Server)
	require.Equal(t, 90*time.Second, time.Duration(cfg.Timeout))
	require.Equal(t, "/tmp/acis-cache", cfg.CacheDir)
	require.Equal(t, 12*time.Hour, time.Duration(cfg.CacheTTL))
	require.False(t, cfg.NoCache)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server = "http://localhost:8080"`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.Server)
	// unset fields keep their defaults
	require.Equal(t, 60*time.Second, time.Duration(cfg.Timeout))
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`timeout = "ninety seconds"`), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
}
