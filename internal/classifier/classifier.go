package classifier

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/carbonlens/triage/internal/domains"
)

// reasonKeywordLimit caps the keywords shown in the Reason string.
const reasonKeywordLimit = 5

// Thresholds control the escalation decision. The defaults were tuned by
// inspection, not derived from labeled data, so they stay configurable.
type Thresholds struct {
	// LowConfidence escalates any result whose confidence falls below it.
	LowConfidence float64

	// MultiDomain escalates when at least this many domains each matched
	// two or more keywords: cross-cutting content spanning many domains.
	MultiDomain int

	// MinTotalMatches escalates when the total keyword hits across all
	// domains fall below it: vocabulary no existing domain covers.
	MinTotalMatches int
}

// DefaultThresholds returns the standard escalation thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowConfidence:   0.3,
		MultiDomain:     3,
		MinTotalMatches: 2,
	}
}

// Classifier scores text against every registered domain and decides whether
// the result is confident enough to stand or must be escalated.
type Classifier struct {
	registry   *domains.Registry
	thresholds Thresholds
	logger     *slog.Logger
}

// New creates a classifier over the given registry.
func New(registry *domains.Registry, thresholds Thresholds, logger *slog.Logger) *Classifier {
	return &Classifier{
		registry:   registry,
		thresholds: thresholds,
		logger:     logger.With("system", "classifier"),
	}
}

// Classify scores text against a snapshot of the registry and returns the
// ranked decision. An empty registry is a configuration fault and returns
// domains.ErrEmptyRegistry; every other input, including empty text and text
// matching nothing, yields a deterministic Result.
func (c *Classifier) Classify(text string) (*Result, error) {
	roster := c.registry.Snapshot()
	if len(roster) == 0 {
		return nil, fmt.Errorf("classify: %w", domains.ErrEmptyRegistry)
	}

	folded := strings.ToLower(text)

	candidates := make([]ScoredCandidate, len(roster))
	for i, d := range roster {
		candidates[i] = scoreFolded(folded, d)
	}

	// Stable sort keeps registry insertion order on ties, which makes the
	// zero-match fallback land on the first registered domain.
	ranked := make([]ScoredCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	primary := ranked[0]

	result := &Result{
		PrimaryDomainID: primary.DomainID,
		PrimaryScore:    primary.Score,
		Candidates:      candidates,
	}

	var secondary *ScoredCandidate
	if len(ranked) > 1 && ranked[1].Score > 0 {
		secondary = &ranked[1]
		result.SecondaryDomainID = secondary.DomainID
		result.SecondaryScore = secondary.Score
	}

	result.Confidence = confidence(primary, secondary)
	result.NeedsEscalation = c.needsEscalation(result.Confidence, candidates)
	result.Reason = reason(primary)

	return result, nil
}

// ClassifyBatch classifies texts independently, preserving input order.
func (c *Classifier) ClassifyBatch(texts []string) ([]*Result, error) {
	results := make([]*Result, len(texts))
	for i, text := range texts {
		r, err := c.Classify(text)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// confidence derives a [0,1] certainty from the primary score and the gap to
// the runner-up. A decisive primary with no close secondary approaches the
// base; a near-tie halves it.
func confidence(primary ScoredCandidate, secondary *ScoredCandidate) float64 {
	if primary.Score == 0 {
		return 0
	}

	base := primary.Score / 10.0
	if base > 1.0 {
		base = 1.0
	}

	if secondary == nil || secondary.Score == 0 {
		return base
	}

	gap := (primary.Score - secondary.Score) / primary.Score
	return base * (0.5 + gap*0.5)
}

func (c *Classifier) needsEscalation(conf float64, candidates []ScoredCandidate) bool {
	if conf < c.thresholds.LowConfidence {
		return true
	}

	multiMatch := 0
	totalMatches := 0
	for _, cand := range candidates {
		totalMatches += cand.MatchCount
		if cand.MatchCount >= 2 {
			multiMatch++
		}
	}

	if multiMatch >= c.thresholds.MultiDomain {
		return true
	}
	if totalMatches < c.thresholds.MinTotalMatches {
		return true
	}

	return false
}

func reason(primary ScoredCandidate) string {
	if len(primary.MatchedKeywords) == 0 {
		return fmt.Sprintf("default assignment to domain %s (no keyword match)", primary.DomainID)
	}

	shown := primary.MatchedKeywords
	suffix := ""
	if len(shown) > reasonKeywordLimit {
		shown = shown[:reasonKeywordLimit]
		suffix = fmt.Sprintf(" (top %d)", reasonKeywordLimit)
	}

	return fmt.Sprintf("keywords [%s]%s → domain %s", strings.Join(shown, ", "), suffix, primary.DomainID)
}
