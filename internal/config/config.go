package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds process-wide settings for the orgchart binary.
type Config struct {
	DBPath          string
	LogLevel        slog.Level
	HistoryLimit    int
	OverLogInterval time.Duration
}

// DefaultConfig returns the settings used when no environment overrides are
// present. DBPath is left empty and resolved against the home directory by
// Load.
func DefaultConfig() Config {
	return Config{
		LogLevel:        slog.LevelWarn,
		HistoryLimit:    20,
		OverLogInterval: 2 * time.Second,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or malformed values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ORGCHART_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".orgchart", "orgchart.db")
	}
	if v := os.Getenv("ORGCHART_LOG_LEVEL"); v != "" {
		if lvl, ok := ParseLevel(v); ok {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("ORGCHART_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := os.Getenv("ORGCHART_OVER_LOG_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.OverLogInterval = time.Duration(n) * time.Millisecond
		}
	}
	return cfg, nil
}

// ParseLevel accepts debug, info, warn (or warning) and error, in any case.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
