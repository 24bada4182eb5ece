// Package classifier implements rule-based keyword classification over the
// domain registry. Scoring and classification are pure computations with no
// side effects; the only shared state they touch is a read-only registry
// snapshot taken at the start of each call.
package classifier

import (
	"sort"
	"strings"

	"github.com/carbonlens/triage/internal/domains"
)

// matchedKeywordLimit caps the matched keywords reported per candidate.
// Scores and escalation counts use the full match set; only reporting
// is truncated.
const matchedKeywordLimit = 10

// ScoredCandidate is the result of scoring one domain against one text.
type ScoredCandidate struct {
	DomainID        string   `json:"domain_id"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`

	// MatchCount is the full number of keyword hits, independent of the
	// MatchedKeywords reporting cap.
	MatchCount int `json:"match_count"`
}

// Score computes the relevance of a domain's keyword set against text.
// Matching is substring-based on the case-folded text: token matching would
// miss inflected and compound forms, which dominate the Korean roster.
// Overlapping matches are not deduplicated; a keyword contained in another
// matched keyword contributes independently. A domain with no keywords
// scores zero without error.
func Score(text string, d domains.Domain) ScoredCandidate {
	return scoreFolded(strings.ToLower(text), d)
}

func scoreFolded(folded string, d domains.Domain) ScoredCandidate {
	c := ScoredCandidate{DomainID: d.ID}

	for _, kw := range d.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, strings.ToLower(kw)) {
			c.Score += domains.KeywordWeight(kw)
			c.MatchedKeywords = append(c.MatchedKeywords, kw)
			c.MatchCount++
		}
	}

	// Report heaviest matches first; ties keep keyword-list order.
	sort.SliceStable(c.MatchedKeywords, func(i, j int) bool {
		return domains.KeywordWeight(c.MatchedKeywords[i]) > domains.KeywordWeight(c.MatchedKeywords[j])
	})
	if len(c.MatchedKeywords) > matchedKeywordLimit {
		c.MatchedKeywords = c.MatchedKeywords[:matchedKeywordLimit]
	}

	return c
}
