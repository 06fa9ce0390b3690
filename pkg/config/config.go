// Package config loads server settings from an optional YAML file with
// environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"dbPath"`
	JWTSecret string `yaml:"jwtSecret"`
	LogLevel  string `yaml:"logLevel"`
}

func defaults() Config {
	return Config{
		Port:     "8080",
		DBPath:   "retro.db",
		LogLevel: "info",
	}
}

// Load reads path if it exists, then applies env overrides. An empty
// path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg.Port, "PORT")
	applyEnv(&cfg.DBPath, "DB_PATH")
	applyEnv(&cfg.JWTSecret, "JWT_SECRET")
	applyEnv(&cfg.LogLevel, "LOG_LEVEL")

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("jwt secret is required (JWT_SECRET or jwtSecret)")
	}
	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SlogLevel maps the configured level name, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
