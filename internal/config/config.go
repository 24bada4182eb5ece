// Package config loads triage configuration from TOML files with
// environment overlays and env-var overrides. Resolution is three-phase:
// defaults, then environment variables, then validation.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTriageEnv     = "TRIAGE_ENV"
	EnvTriageVersion = "TRIAGE_VERSION"
)

// Config is the root configuration for the triage pipeline.
type Config struct {
	Classifier ClassifierConfig `toml:"classifier"`
	Arbiter    ArbiterConfig    `toml:"arbiter"`
	Decision   DecisionConfig   `toml:"decision"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
	Database   DatabaseConfig   `toml:"database"`
	Version    string           `toml:"version"`
}

// Env returns the TRIAGE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTriageEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Classifier.Merge(&overlay.Classifier)
	c.Arbiter.Merge(&overlay.Arbiter)
	c.Decision.Merge(&overlay.Decision)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Database.Merge(&overlay.Database)
}

// Finalize applies defaults, environment overrides, and validation to every
// sub-config.
func (c *Config) Finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvTriageVersion); v != "" {
		c.Version = v
	}

	if err := c.Classifier.Finalize(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Arbiter.Finalize(); err != nil {
		return fmt.Errorf("arbiter: %w", err)
	}
	if err := c.Decision.Finalize(); err != nil {
		return fmt.Errorf("decision: %w", err)
	}
	if err := c.Pipeline.Finalize(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvTriageEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
