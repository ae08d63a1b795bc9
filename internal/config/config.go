// Package config loads the tool configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planline/internal/model"
)

var ErrInvalidDialect = errors.New("config: invalid default dialect")

// Config is the root configuration.
type Config struct {
	// Vault is the directory scanned for markdown documents.
	Vault string `yaml:"vault"`
	// DefaultDialect is used when a task line carries no dialect markers.
	DefaultDialect string `yaml:"default_dialect"`
	// Database is the path of the sqlite record index.
	Database string `yaml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vault:          ".",
		DefaultDialect: string(model.DialectBracket),
		Database:       "planline.db",
	}
}

// Load reads the config file at path, filling unset values with defaults.
// A missing file yields the defaults without error; a present but invalid
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Vault == "" {
		cfg.Vault = Default().Vault
	}
	if cfg.DefaultDialect == "" {
		cfg.DefaultDialect = Default().DefaultDialect
	}
	if cfg.Database == "" {
		cfg.Database = Default().Database
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !model.Dialect(c.DefaultDialect).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDialect, c.DefaultDialect)
	}
	return nil
}

// Dialect returns the configured default dialect.
func (c Config) Dialect() model.Dialect {
	return model.Dialect(c.DefaultDialect)
}
