package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbonlens/triage/internal/arbiter"
	"github.com/carbonlens/triage/internal/classifier"
)

// Item is one unit of content to route.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Title       string    `json:"title"`
	SourceLabel string    `json:"source_label"`
}

// ItemResult is the final routing decision for one item. For escalated items
// the arbitration assignment supersedes the rule-based primary; downstream
// consumers should read AssignedDomains, which already reflects that.
type ItemResult struct {
	Index          int                `json:"index"`
	Item           Item               `json:"item"`
	Classification *classifier.Result `json:"classification"`
	Escalated      bool               `json:"escalated"`
	Escalation     *arbiter.Result    `json:"escalation,omitempty"`

	AssignedDomains []string `json:"assigned_domains"`
}

// BatchResult aggregates a pipeline run over one batch.
type BatchResult struct {
	BatchID        uuid.UUID    `json:"batch_id"`
	TotalProcessed int          `json:"total_processed"`
	TotalEscalated int          `json:"total_escalated"`
	NewDomains     []string     `json:"new_domains"`
	Items          []ItemResult `json:"items"`
	Errors         []string     `json:"errors,omitempty"`
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    time.Time    `json:"completed_at"`
}
