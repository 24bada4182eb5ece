package classifier

// Result is the rule-based decision for one input text. It is immutable once
// returned; escalated items carry it alongside the arbitration outcome.
type Result struct {
	PrimaryDomainID   string  `json:"primary_domain_id"`
	PrimaryScore      float64 `json:"primary_score"`
	SecondaryDomainID string  `json:"secondary_domain_id,omitempty"`
	SecondaryScore    float64 `json:"secondary_score,omitempty"`

	// Candidates holds every scored domain in registry order.
	Candidates []ScoredCandidate `json:"candidates"`

	Confidence      float64 `json:"confidence"`
	NeedsEscalation bool    `json:"needs_escalation"`
	Reason          string  `json:"reason"`
}

// ScoreFor returns the score recorded for the given domain id.
func (r *Result) ScoreFor(domainID string) (float64, bool) {
	for _, c := range r.Candidates {
		if c.DomainID == domainID {
			return c.Score, true
		}
	}
	return 0, false
}
