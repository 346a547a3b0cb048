package config

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

type LogConfig struct {
	Level  slog.Level
	Format string
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (cfg *Config) registerLog(f *configFile) error {
	cfg.Log = LogConfig{
		Level:  slog.LevelInfo,
		Format: "json",
	}

	if f.Log.Level != "" {
		if err := cfg.Log.Level.UnmarshalText([]byte(f.Log.Level)); err != nil {
			return err
		}
	}

	switch strings.ToLower(f.Log.Format) {
	case "":

	case "json", "text":
		cfg.Log.Format = strings.ToLower(f.Log.Format)

	default:
		return errors.New("invalid log format: " + f.Log.Format)
	}

	return nil
}

// Logger builds the logger described by the log section.
func (cfg *Config) Logger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}

	if cfg.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}
