package decision

import (
	"fmt"
	"strings"

	"github.com/carbonlens/triage/internal/arbiter"
)

// Prompt construction limits. Content beyond contentLimit runes is truncated
// to keep requests bounded regardless of item size.
const (
	contentLimit      = 3000
	rosterKeywordShow = 10
)

// BuildPrompt renders the arbitration request as a single instruction block:
// the current roster, the item under review, and the required response
// schema. The schema mirrors the wire payload the arbiter parses.
func BuildPrompt(req arbiter.Request) string {
	var b strings.Builder

	b.WriteString("You moderate a panel of domain experts for carbon-market content.\n")
	b.WriteString("Assign the item below to the most suitable domain(s) from the roster.\n")
	b.WriteString("If no existing domain covers the subject, propose a new one.\n\n")

	b.WriteString("## Current domain roster\n")
	for _, d := range req.Roster {
		fmt.Fprintf(&b, "### %s (%s)\n", d.DisplayName, d.ID)
		if d.Description != "" {
			fmt.Fprintf(&b, "- description: %s\n", d.Description)
		}
		keywords := d.Keywords
		if len(keywords) > rosterKeywordShow {
			keywords = keywords[:rosterKeywordShow]
		}
		fmt.Fprintf(&b, "- keywords: %s\n\n", strings.Join(keywords, ", "))
	}

	b.WriteString("## Item\n")
	fmt.Fprintf(&b, "- title: %s\n", req.Title)
	fmt.Fprintf(&b, "- source: %s\n\n", req.SourceLabel)
	b.WriteString(truncate(req.Text, contentLimit))
	b.WriteString("\n\n")

	b.WriteString("## Response format\n")
	b.WriteString("Respond with JSON only, no surrounding text:\n")
	b.WriteString(`{
  "assigned_domain_ids": ["domain_id"],
  "proposals": [
    {
      "suggested_id": "new_domain_id",
      "suggested_display_name": "display name",
      "candidate_keywords": ["keyword"],
      "candidate_description": "what the domain covers",
      "justification": "why the roster needs it"
    }
  ],
  "rationale": "reasoning behind the assignment",
  "agreement_score": 0.85
}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- assigned_domain_ids must contain at least one roster id.\n")
	b.WriteString("- agreement_score is your confidence in [0.0, 1.0].\n")
	b.WriteString("- propose new domains only when genuinely uncovered; an empty list is fine.\n")

	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
