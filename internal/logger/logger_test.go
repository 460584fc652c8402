package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithConfigWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	t.Cleanup(func() {
		require.NoError(t, InitWithConfig(Config{OutputPath: "stdout"}))
	})

	require.NoError(t, InitWithConfig(Config{
		Level:      LevelInfo,
		OutputPath: path,
		Format:     "json",
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 3,
	}))
	require.NotNil(t, rotating)
	assert.Equal(t, 2, rotating.MaxBackups)
	assert.Equal(t, 3, rotating.MaxAge)

	Info("Report stored", "report_id", "abc")
	Debug("hidden at info level")
	require.NoError(t, Close())
	assert.Nil(t, rotating)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Report stored"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestCloseWithoutFile(t *testing.T) {
	require.NoError(t, InitWithConfig(Config{OutputPath: "stdout"}))
	assert.Nil(t, rotating)
	assert.NoError(t, Close())
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}
