package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Tracker.Quality)
	assert.Nil(t, cfg.Log.File)
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
[tracker]
quality = 2
clock-24h = true
utc-dates = false
trend-window = 5

[log]
file = "/tmp/sleeptrack.log"
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Tracker.Quality)
	assert.Equal(t, 2, *cfg.Tracker.Quality)
	assert.True(t, *cfg.Tracker.Clock24h)
	assert.False(t, *cfg.Tracker.UTCDates)
	assert.Equal(t, 5, *cfg.Tracker.TrendWindow)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	for _, body := range []string{
		"[tracker]\nquality = 5\n",
		"[tracker]\ntrend-window = 0\n",
		"[log]\nlevel = \"loud\"\n",
		"[tracker]\nunknown = 1\n",
	} {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Errorf(t, err, "expected error for %q", body)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	assert.Equal(t, filepath.Join("/xdg/config", "sleeptrack", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/xdg/state", "sleeptrack", "sleeptrack.log"), DefaultLogPath())
}
