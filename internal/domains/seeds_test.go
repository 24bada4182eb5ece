package domains_test

import (
	"testing"

	"github.com/carbonlens/triage/internal/domains"
)

func TestSeeds(t *testing.T) {
	seeds := domains.Seeds()

	if len(seeds) != 5 {
		t.Fatalf("Seeds() returned %d domains, want 5", len(seeds))
	}

	wantOrder := []string{
		domains.SeedPolicy,
		domains.SeedCarbonCredit,
		domains.SeedMarket,
		domains.SeedTechnology,
		domains.SeedMRV,
	}

	seen := make(map[string]bool)
	for i, d := range seeds {
		if d.ID != wantOrder[i] {
			t.Errorf("Seeds()[%d].ID = %q, want %q", i, d.ID, wantOrder[i])
		}
		if seen[d.ID] {
			t.Errorf("duplicate seed id %q", d.ID)
		}
		seen[d.ID] = true

		if d.DisplayName == "" {
			t.Errorf("seed %q has empty display name", d.ID)
		}
		if len(d.Keywords) == 0 {
			t.Errorf("seed %q has no keywords", d.ID)
		}
		if d.Description == "" {
			t.Errorf("seed %q has empty description", d.ID)
		}
	}
}

func TestSeedsIndependentCopies(t *testing.T) {
	a := domains.Seeds()
	b := domains.Seeds()

	a[0].Keywords[0] = "mutated"

	if b[0].Keywords[0] == "mutated" {
		t.Error("Seeds() calls share keyword slices")
	}
}
