package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/datefeatures/internal/constants"
)

type Config struct {
	Output struct {
		Format string `yaml:"format" default:"table" validate:"oneof=table csv json"`
	} `yaml:"output"`
	Log struct {
		Dir   string `yaml:"dir"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
	Database struct {
		Target string `yaml:"target" default:"~/.config/datefeatures/features.db" validate:"required"`
	} `yaml:"database"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		// Only fails on malformed default tags.
		panic(err)
	}
	return &c
}

// Load reads a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = ExpandHome(path)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// DatabaseTarget returns the export target with a leading ~ expanded. Postgres
// URLs are returned unchanged.
func (c *Config) DatabaseTarget() string {
	return ExpandHome(c.Database.Target)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return ExpandHome(constants.DefaultConfigPath)
}
