package config

import (
	"fmt"
	"time"

	"github.com/carbonlens/triage/internal/arbiter"
)

// ArbiterConfig controls the escalation boundary: the external call timeout
// and the size of the arbitration result cache.
type ArbiterConfig struct {
	Timeout   string `toml:"timeout"`
	CacheSize int    `toml:"cache_size"`
}

// Merge overwrites non-zero fields from overlay.
func (c *ArbiterConfig) Merge(overlay *ArbiterConfig) {
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.CacheSize != 0 {
		c.CacheSize = overlay.CacheSize
	}
}

// Finalize applies defaults and validates the timeout format.
func (c *ArbiterConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = arbiter.DefaultTimeout.String()
	}
	if c.CacheSize == 0 {
		c.CacheSize = arbiter.DefaultCacheSize
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be >= 1, got %d", c.CacheSize)
	}
	return nil
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ArbiterConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
