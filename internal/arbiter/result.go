// Package arbiter implements the escalation boundary. When rule-based
// classification is too uncertain, the arbiter sends the item and the current
// roster to an external decision service and turns the service's untrusted
// response into a validated EscalationResult. Failures of the external
// service never reach the caller; they degrade to a default assignment.
package arbiter

import (
	"context"

	"github.com/carbonlens/triage/internal/domains"
)

// Proposal is a candidate for a brand-new domain suggested during
// arbitration. SuggestedID and SuggestedDisplayName must be non-empty for
// the proposal to be actionable; the generator rejects it otherwise.
type Proposal struct {
	SuggestedID          string   `json:"suggested_id"`
	SuggestedDisplayName string   `json:"suggested_display_name"`
	CandidateKeywords    []string `json:"candidate_keywords"`
	CandidateDescription string   `json:"candidate_description"`
	Justification        string   `json:"justification"`
}

// Result is the validated outcome of arbitration for one item.
// AssignedDomains always contains at least one registered domain id when the
// registry is non-empty, falling back to the default domain when the service
// named only unknown ids or failed outright.
type Result struct {
	AssignedDomains []string   `json:"assigned_domains"`
	Proposals       []Proposal `json:"proposals"`
	Rationale       string     `json:"rationale"`
	AgreementScore  float64    `json:"agreement_score"`

	// Degraded marks results produced by the local fallback path rather
	// than a successfully validated service response.
	Degraded bool `json:"degraded,omitempty"`
}

// Request carries one item plus the roster snapshot to the decision service.
type Request struct {
	Text        string
	Title       string
	SourceLabel string
	Roster      []domains.Domain
}

// DecisionService is the external arbitration boundary. Decide returns the
// service's raw textual payload; parsing and validation stay on this side of
// the boundary so a misbehaving service cannot poison the pipeline.
type DecisionService interface {
	Decide(ctx context.Context, req Request) (string, error)
}
