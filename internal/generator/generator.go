// Package generator synthesizes full domain definitions from escalation
// proposals and registers them in the roster. Generation is pure; registry
// and store insertion happen only through Register so the synthesis step
// stays independently testable.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carbonlens/triage/internal/arbiter"
	"github.com/carbonlens/triage/internal/domains"
)

// defaultCategory labels proposals whose keywords match no known category.
const defaultCategory = "탄소"

// categoryTriggers maps a coarse category label to the substrings that
// signal it. First match wins, in declaration order.
var categoryTriggers = []struct {
	label    string
	triggers []string
}{
	{"통상", []string{"통상", "무역", "수출", "수입", "관세", "FTA", "WTO"}},
	{"금융", []string{"금융", "투자", "자본", "증권", "은행", "펀드", "자산"}},
	{"에너지", []string{"에너지", "전력", "발전", "재생", "신재생", "전기", "원자력"}},
	{"산업", []string{"산업", "제조", "공장", "생산", "설비", "제철", "철강"}},
	{"농업", []string{"농업", "농산", "식량", "농촌", "작물", "축산", "어업"}},
	{"해운", []string{"해운", "선박", "항만", "물류", "운송", "항공", "조선"}},
}

// Generator turns proposals into registrable domains.
type Generator struct {
	registry *domains.Registry
	store    domains.Store
	logger   *slog.Logger
}

// New creates a generator over the registry. The store is optional; when
// present, successful registrations are also persisted.
func New(registry *domains.Registry, store domains.Store, logger *slog.Logger) *Generator {
	return &Generator{
		registry: registry,
		store:    store,
		logger:   logger.With("system", "generator"),
	}
}

// Generate builds a domain definition from a proposal, or nil when the
// proposal lacks a suggested id or display name. Keywords carry over as-is;
// their weights are derived at scoring time from keyword length.
func (g *Generator) Generate(p arbiter.Proposal) *domains.Domain {
	if strings.TrimSpace(p.SuggestedID) == "" || strings.TrimSpace(p.SuggestedDisplayName) == "" {
		return nil
	}

	category := inferCategory(p.CandidateKeywords)

	return &domains.Domain{
		ID:          p.SuggestedID,
		DisplayName: p.SuggestedDisplayName,
		Keywords:    append([]string(nil), p.CandidateKeywords...),
		Description: describe(category, p),
	}
}

// Register generates a domain from the proposal and inserts it into the
// registry, persisting it when a store is configured. Returns false when the
// proposal is rejected or the id collides with a protected seed domain.
func (g *Generator) Register(ctx context.Context, p arbiter.Proposal) bool {
	d := g.Generate(p)
	if d == nil {
		g.logger.Warn("rejecting proposal without id or display name",
			"suggested_id", p.SuggestedID,
			"suggested_display_name", p.SuggestedDisplayName,
		)
		return false
	}

	if err := g.registry.Put(*d); err != nil {
		g.logger.Warn("registration refused", "id", d.ID, "error", err)
		return false
	}

	if g.store != nil {
		if err := g.store.Put(ctx, *d); err != nil {
			// The in-memory registration stands; persistence catches up
			// on the next successful write.
			g.logger.Warn("domain persistence failed", "id", d.ID, "error", err)
		}
	}

	return true
}

// inferCategory derives a coarse category label from the proposal keywords:
// the first trigger table entry any keyword matches, else the first keyword
// itself, else the generic default.
func inferCategory(keywords []string) string {
	joined := strings.ToLower(strings.Join(keywords, " "))

	for _, cat := range categoryTriggers {
		for _, trigger := range cat.triggers {
			if strings.Contains(joined, strings.ToLower(trigger)) {
				return cat.label
			}
		}
	}

	if len(keywords) > 0 && strings.TrimSpace(keywords[0]) != "" {
		return keywords[0]
	}
	return defaultCategory
}

func describe(category string, p arbiter.Proposal) string {
	switch {
	case p.CandidateDescription != "" && p.Justification != "":
		return fmt.Sprintf("%s 분야: %s (%s)", category, p.CandidateDescription, p.Justification)
	case p.CandidateDescription != "":
		return fmt.Sprintf("%s 분야: %s", category, p.CandidateDescription)
	case p.Justification != "":
		return fmt.Sprintf("%s 분야 전문가: %s", category, p.Justification)
	default:
		return fmt.Sprintf("%s 분야 전문가", category)
	}
}
