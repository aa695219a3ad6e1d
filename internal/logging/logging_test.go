package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, closeFn, err := New("", "")
	require.NoError(t, err)
	logger.Infow("ignored")
	closeFn()
}

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, closeFn, err := New(path, "debug")
	require.NoError(t, err)
	logger.Debugw("record committed", "duration", 7.5)
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"msg":"record committed"`), out)
	assert.True(t, strings.Contains(out, `"duration":7.5`), out)
}

func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closeFn, err := New(path, "warn")
	require.NoError(t, err)
	logger.Infow("quiet")
	logger.Warnw("loud")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "app.log"), "chatty")
	assert.Error(t, err)
}
