// Package config loads the YAML configuration shared by the local binary
// and the SSH server.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration.
type Config struct {
	Inventory InventoryConfig `yaml:"inventory"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// InventoryConfig sizes the inventory and the seeded item database.
type InventoryConfig struct {
	Capacity     int `yaml:"capacity"`
	ItemsPerPart int `yaml:"items_per_part"`
	Columns      int `yaml:"columns"` // grid width on screen
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Port        int    `yaml:"port"`
	HostKey     string `yaml:"host_key"`
	MaxSessions int    `yaml:"max_sessions"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills every unset field.
func (c *Config) applyDefaults() {
	if c.Inventory.Capacity == 0 {
		c.Inventory.Capacity = 18
	}
	if c.Inventory.ItemsPerPart == 0 {
		c.Inventory.ItemsPerPart = 2
	}
	if c.Inventory.Columns == 0 {
		c.Inventory.Columns = 6
	}
	if c.Server.Port == 0 {
		c.Server.Port = 2222
	}
	if c.Server.HostKey == "" {
		c.Server.HostKey = "server_host_key"
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = 16
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Inventory.Capacity < 1 {
		errs = append(errs, fmt.Errorf("inventory.capacity must be positive, got %d", c.Inventory.Capacity))
	}
	if c.Inventory.ItemsPerPart < 0 {
		errs = append(errs, fmt.Errorf("inventory.items_per_part must not be negative, got %d", c.Inventory.ItemsPerPart))
	}
	if c.Inventory.Columns < 1 {
		errs = append(errs, fmt.Errorf("inventory.columns must be positive, got %d", c.Inventory.Columns))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("server.max_sessions must be positive, got %d", c.Server.MaxSessions))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: unknown level %q", s)
	}
	return lvl, nil
}
