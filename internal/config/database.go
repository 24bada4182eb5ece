package config

import "os"

const EnvDatabaseDSN = "TRIAGE_DB_DSN"

// DatabaseConfig points at the optional domain store. An empty DSN means the
// registry runs purely in memory from the seed roster.
type DatabaseConfig struct {
	DSN string `toml:"dsn"`
}

// Merge overwrites non-zero fields from overlay.
func (c *DatabaseConfig) Merge(overlay *DatabaseConfig) {
	if overlay.DSN != "" {
		c.DSN = overlay.DSN
	}
}

// Finalize applies the environment override. The DSN is optional, so there
// is nothing to validate beyond that.
func (c *DatabaseConfig) Finalize() error {
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		c.DSN = v
	}
	return nil
}

// Enabled reports whether a persistent domain store is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}
