// Package domains implements the domain roster for triage. It provides the
// Domain model, keyword weighting, a runtime-mutable Registry with snapshot
// read semantics, and an optional PostgreSQL-backed store for persisting
// runtime-registered domains across runs.
package domains

import (
	"time"
	"unicode/utf8"
)

// Domain is a named classification target. A domain is identified by a plain
// string ID whether it was compiled in as a seed or registered at runtime;
// the registry is the single source of truth for which domains exist.
type Domain struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Keywords    []string  `json:"keywords"`
	Description string    `json:"description"`
	Seed        bool      `json:"seed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a deep copy of the domain. Registry reads hand out clones so
// callers can never mutate registered keyword slices in place.
func (d Domain) Clone() Domain {
	c := d
	c.Keywords = make([]string, len(d.Keywords))
	copy(c.Keywords, d.Keywords)
	return c
}

// KeywordWeight returns the match weight for a keyword. Longer keywords are
// more specific and score higher. Length is measured in runes, not bytes:
// the roster is largely Korean and byte length would triple-count Hangul.
func KeywordWeight(keyword string) float64 {
	n := utf8.RuneCountInString(keyword)
	extra := n - 2
	if extra < 0 {
		extra = 0
	}
	return 1.0 + float64(extra)*0.1
}
