package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 15, cfg.PageSize)
	assert.Equal(t, "/storage", cfg.StorageURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inventaris.yaml")
	require.NoError(t, os.WriteFile(file, []byte("PAGE_SIZE: 20\nAPP_PORT: \":9000\"\n"), 0o644))
	t.Setenv("APP_PORT", ":9100")

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, ":9100", cfg.AppPort)
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")

	_, err := Load(viper.New(), "")
	assert.Error(t, err)
}
