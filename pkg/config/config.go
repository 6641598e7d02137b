// Package config loads application configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v2"
)

// Mode selects which shells the process runs.
const (
	// ModeMenu runs the interactive text menu on stdin/stdout
	ModeMenu = "menu"
	// ModeServe runs the HTTP API server
	ModeServe = "serve"
	// ModeBoth runs the menu and the HTTP server against one ledger
	ModeBoth = "both"
)

// Duration wraps time.Duration so YAML values like "5s" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Development bool   `yaml:"development"`
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Address      string   `yaml:"address"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// Config is the full application configuration.
type Config struct {
	// Mode is menu, serve, or both
	Mode string `yaml:"mode"`

	Log  LogConfig  `yaml:"log"`
	HTTP HTTPConfig `yaml:"http"`

	// MetricsNamespace prefixes all exported Prometheus metrics
	MetricsNamespace string `yaml:"metrics_namespace"`

	// DuplicatePolicy is overwrite (legacy) or reject
	DuplicatePolicy string `yaml:"duplicate_policy"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Mode: ModeMenu,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  Duration(5 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
		},
		MetricsNamespace: "bankledger",
		DuplicatePolicy:  "overwrite",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the process environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BANKLEDGER_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("BANKLEDGER_HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("BANKLEDGER_METRICS_NAMESPACE"); v != "" {
		cfg.MetricsNamespace = v
	}
	if v := os.Getenv("BANKLEDGER_DUPLICATE_POLICY"); v != "" {
		cfg.DuplicatePolicy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if os.Getenv("LOG_DEV") == "true" {
		cfg.Log.Development = true
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMenu, ModeServe, ModeBoth:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.DuplicatePolicy {
	case "overwrite", "reject":
	default:
		return fmt.Errorf("config: unknown duplicate policy %q", c.DuplicatePolicy)
	}
	if c.Mode != ModeMenu && c.HTTP.Address == "" {
		return fmt.Errorf("config: http address required in %s mode", c.Mode)
	}
	return nil
}
