package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FILEDB_TRANSPORT", "http")
	t.Setenv("FILEDB_PORT", "9000")
	t.Setenv("FILEDB_DATA_DIR", "/var/lib/filedb")
	t.Setenv("FILEDB_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/var/lib/filedb", cfg.Storage.DataDir)
	assert.Equal(t, "filedb", cfg.Storage.Root)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("FILEDB_TRANSPORT", "grpc")
	_, err := Load()
	assert.Error(t, err)
}
