// Package config loads the sppa configuration file.
//
// The file lives at $XDG_CONFIG_HOME/sppa/config.yaml by default. A
// missing file is not an error; defaults apply. SPPA_* environment
// variables override values from the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sppa/internal/llm"
)

// Config is the complete sppa configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the XDG data default.
	DB string `yaml:"db"`

	Report ReportConfig `yaml:"report"`
	LLM    llm.Config   `yaml:"llm"`
}

// ReportConfig controls report export.
type ReportConfig struct {
	// Dir is where exported reports are written. Empty means the
	// current directory.
	Dir string `yaml:"dir"`

	// Format is the default export format ("markdown" or "json").
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{Format: "markdown"},
		LLM:    llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sppa/config.yaml, falling back to
// ~/.config/sppa/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sppa", "config.yaml"), nil
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides configuration from SPPA_* environment variables.
// SPPA_DB is not read here; the CLI gives it priority over the file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SPPA_REPORT_DIR"); v != "" {
		c.Report.Dir = v
	}
	if v := os.Getenv("SPPA_REPORT_FORMAT"); v != "" {
		c.Report.Format = v
	}
	c.LLM.ApplyEnv()
}

// Validate checks the values that can be checked without side effects.
// The LLM section is validated when a provider is built.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "markdown", "json":
	default:
		return fmt.Errorf("report.format must be \"markdown\" or \"json\", got %q", c.Report.Format)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	if c.LLM.Retry.MaxAttempts < 0 {
		return fmt.Errorf("llm.retry.max_attempts must not be negative")
	}
	return nil
}

// SaveToFile writes the configuration as YAML, creating the parent
// directory.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// API keys may be present.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
