package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogConfig selects the minimum level; an empty level means info.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	return NewSection("Log").Add("level", c.Level).String()
}

func (c *LogConfig) Validate() error {
	_, err := c.SlogLevel()
	return err
}

// SlogLevel converts Level to a slog.Level.
func (c *LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn or error, got %q", c.Level)
	}
}
