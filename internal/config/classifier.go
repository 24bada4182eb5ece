package config

import (
	"fmt"

	"github.com/carbonlens/triage/internal/classifier"
)

// ClassifierConfig holds the escalation thresholds. They were tuned by
// inspection rather than derived from labeled data, so they remain tunable
// per deployment.
type ClassifierConfig struct {
	LowConfidence   float64 `toml:"low_confidence"`
	MultiDomain     int     `toml:"multi_domain"`
	MinTotalMatches int     `toml:"min_total_matches"`
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.LowConfidence != 0 {
		c.LowConfidence = overlay.LowConfidence
	}
	if overlay.MultiDomain != 0 {
		c.MultiDomain = overlay.MultiDomain
	}
	if overlay.MinTotalMatches != 0 {
		c.MinTotalMatches = overlay.MinTotalMatches
	}
}

// Finalize applies defaults and validates ranges.
func (c *ClassifierConfig) Finalize() error {
	defaults := classifier.DefaultThresholds()
	if c.LowConfidence == 0 {
		c.LowConfidence = defaults.LowConfidence
	}
	if c.MultiDomain == 0 {
		c.MultiDomain = defaults.MultiDomain
	}
	if c.MinTotalMatches == 0 {
		c.MinTotalMatches = defaults.MinTotalMatches
	}

	if c.LowConfidence < 0 || c.LowConfidence > 1 {
		return fmt.Errorf("low_confidence must be within [0,1], got %v", c.LowConfidence)
	}
	if c.MultiDomain < 1 {
		return fmt.Errorf("multi_domain must be >= 1, got %d", c.MultiDomain)
	}
	if c.MinTotalMatches < 0 {
		return fmt.Errorf("min_total_matches must be >= 0, got %d", c.MinTotalMatches)
	}
	return nil
}

// Thresholds converts the config into classifier thresholds.
func (c *ClassifierConfig) Thresholds() classifier.Thresholds {
	return classifier.Thresholds{
		LowConfidence:   c.LowConfidence,
		MultiDomain:     c.MultiDomain,
		MinTotalMatches: c.MinTotalMatches,
	}
}
