package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/pflag"
)

// loadConfig resolves configuration with precedence flags > config file > environment > defaults.
// Only flags the user actually set override the file and environment.
func loadConfig(path string, flags *pflag.FlagSet, overrides map[string]*string) (config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return config.Config{}, err
	}

	for name, value := range overrides {
		if !flags.Changed(name) {
			continue
		}
		switch name {
		case "sink":
			cfg.Sink = *value
		case "dir":
			cfg.Dir = *value
		case "key":
			cfg.Key = *value
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg and installs it as the slog default
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	logger := observability.NewLogger(w, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}
