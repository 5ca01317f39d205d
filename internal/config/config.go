// Package config handles headingdocx command configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/headingdocx/export"
	"github.com/tsawler/headingdocx/internal/logging"
)

// Config is the top-level configuration. Command-line flags override it.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Headings HeadingsConfig `yaml:"headings"`
	Rebuild  RebuildConfig  `yaml:"rebuild"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// HeadingsConfig controls the headings command.
type HeadingsConfig struct {
	Format string `yaml:"format"` // text | json | markdown | html
}

// RebuildConfig controls the rebuild command.
type RebuildConfig struct {
	IncludeTables bool `yaml:"include_tables"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file. Missing keys take their
// defaults; unknown keys are rejected so typos do not go unnoticed.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Headings.Format == "" {
		c.Headings.Format = string(export.Text)
	}
}

// Validate checks that every enumerated value is recognised.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	if _, err := export.ParseFormat(c.Headings.Format); err != nil {
		return err
	}
	return nil
}
