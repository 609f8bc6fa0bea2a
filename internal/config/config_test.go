package config

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ORGCHART_DB", "")
	t.Setenv("ORGCHART_LOG_LEVEL", "")
	t.Setenv("ORGCHART_HISTORY_LIMIT", "")
	t.Setenv("ORGCHART_OVER_LOG_INTERVAL_MS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".orgchart", "orgchart.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 20, cfg.HistoryLimit)
	assert.Equal(t, 2*time.Second, cfg.OverLogInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ORGCHART_DB", ":memory:")
	t.Setenv("ORGCHART_LOG_LEVEL", "DEBUG")
	t.Setenv("ORGCHART_HISTORY_LIMIT", "5")
	t.Setenv("ORGCHART_OVER_LOG_INTERVAL_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.OverLogInterval)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("ORGCHART_DB", ":memory:")
	t.Setenv("ORGCHART_LOG_LEVEL", "loud")
	t.Setenv("ORGCHART_HISTORY_LIMIT", "-3")
	t.Setenv("ORGCHART_OVER_LOG_INTERVAL_MS", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Equal(t, def.HistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, def.OverLogInterval, cfg.OverLogInterval)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")
}
