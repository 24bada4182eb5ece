package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/carbonlens/triage/internal/pipeline"
)

const EnvPipelineConcurrency = "TRIAGE_PIPELINE_CONCURRENCY"

// PipelineConfig bounds the arbitration fan-out per batch.
type PipelineConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
}

// Finalize applies the default concurrency and environment override.
func (c *PipelineConfig) Finalize() error {
	if c.Concurrency == 0 {
		c.Concurrency = pipeline.DefaultConcurrency
	}
	if v := os.Getenv(EnvPipelineConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPipelineConcurrency, err)
		}
		c.Concurrency = n
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	return nil
}
