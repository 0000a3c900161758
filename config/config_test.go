package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omrtre/HotelReservation/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 45, cfg.Hotel.Capacity)
	assert.Equal(t, "OO", cfg.Hotel.LocatorPrefix)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_PartialFileOverridesOnlyWhatItNames(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090

[hotel]
capacity = 12
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Hotel.Capacity)
	// Everything unnamed keeps its default.
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, 300.0, cfg.Hotel.DefaultRate)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func TestLoad_RejectsUnknownStorageDriver(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "postgres"
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestLoad_RejectsBadPort(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 70000
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.CheckInterval())
}
