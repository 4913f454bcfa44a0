package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.StoreBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/garden.db")
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("BADGER_DIR", "/custom/badger")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,,")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/garden.db", cfg.DBPath)
	assert.Equal(t, "badger", cfg.StoreBackend)
	assert.Equal(t, "/custom/badger", cfg.BadgerDir)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nLISTEN_ADDR=:7000\n"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Explicit environment wins over .env.
	t.Setenv("LISTEN_ADDR", ":6000")
	// t.Setenv registers restoration; unset so godotenv can populate it.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg := Load()

	assert.Equal(t, ":6000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
}
