package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", t.TempDir()+"/missing.env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFixtures, cfg.BackendMode)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "default", cfg.Profile)
	assert.False(t, cfg.IsProduction)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", t.TempDir()+"/missing.env")
	t.Setenv("BACKEND_MODE", BackendRemote)
	t.Setenv("API_BASE_URL", "https://api.example.org")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRemote, cfg.BackendMode)
	assert.Equal(t, "https://api.example.org", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProduction)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ENV_FILE", t.TempDir()+"/missing.env")

	t.Setenv("BACKEND_MODE", "carrier-pigeon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BACKEND_MODE", BackendFixtures)
	t.Setenv("PORT", "eighty")
	_, err = Load()
	assert.Error(t, err)
}
