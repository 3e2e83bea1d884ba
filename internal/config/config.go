// Package config loads and saves the ngramlex configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Dir is the directory holding the config file and the import cache,
// relative to the working directory.
const Dir = ".ngramlex"

// Defaults applied by New and when fields are missing from a loaded file.
const (
	DefaultColumn = "SUBTLWF"
	DefaultTopK   = 10
)

// Config is the persisted ngramlex configuration. CLI flags override any of
// these values at run time.
type Config struct {
	DatasetPath string `yaml:"datasetPath,omitempty"`
	Column      string `yaml:"column"`
	TopK        int    `yaml:"topK"`
	JSON        bool   `yaml:"json,omitempty"`
	NoCache     bool   `yaml:"noCache,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Column: DefaultColumn,
		TopK:   DefaultTopK,
	}
}

// ConfigPath returns the path to the config file inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// Save writes the configuration to dir, creating it if needed.
func Save(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(dir), data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from dir, filling in defaults for missing
// fields.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Column == "" {
		cfg.Column = DefaultColumn
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}

	return &cfg, nil
}
