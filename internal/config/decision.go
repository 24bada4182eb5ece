package config

import (
	"os"

	"github.com/carbonlens/triage/internal/decision"
)

const EnvDecisionModel = "TRIAGE_DECISION_MODEL"

// DecisionConfig selects the external decision service model. Credentials
// are not configured here; the Gemini client reads GEMINI_API_KEY itself.
type DecisionConfig struct {
	Model string `toml:"model"`
}

// Merge overwrites non-zero fields from overlay.
func (c *DecisionConfig) Merge(overlay *DecisionConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

// Finalize applies the default model and environment override.
func (c *DecisionConfig) Finalize() error {
	if c.Model == "" {
		c.Model = decision.DefaultModel
	}
	if v := os.Getenv(EnvDecisionModel); v != "" {
		c.Model = v
	}
	return nil
}
