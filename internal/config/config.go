// Package config loads tool configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no explicit config path is given. A
// missing file at this path is not an error.
const DefaultPath = "/etc/sysprop/config.yaml"

// Config holds tool configuration.
type Config struct {
	// PersistDB is the path of the persisted property database.
	// Empty selects a per-user default under the OS cache directory.
	PersistDB string `yaml:"persist_db" env:"SYSPROP_PERSIST_DB"`

	// Contexts maps name prefixes to security contexts, extending
	// the live table's built-in context table.
	Contexts map[string]string `yaml:"contexts" env:"-"`

	// Verbose enables diagnostic output without the -v flag.
	Verbose bool `yaml:"verbose" env:"SYSPROP_VERBOSE"`
}

// Load reads the config file at path (empty means DefaultPath) and
// applies SYSPROP_* environment overrides. An explicitly given path
// must exist; the default path may be absent.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	p := path
	if p == "" {
		p = DefaultPath
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == "":
		// No config file at the default location is fine.
	default:
		return nil, fmt.Errorf("read config %s: %w", p, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.PersistDB == "" {
		cfg.PersistDB = defaultPersistDB()
	}
	return cfg, nil
}

// defaultPersistDB places the persisted store under the user cache
// directory, falling back to the system temp directory.
func defaultPersistDB() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sysprop", "persist.db")
}
