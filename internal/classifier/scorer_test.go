package classifier_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/carbonlens/triage/internal/classifier"
	"github.com/carbonlens/triage/internal/domains"
)

func TestScoreSubstringMatching(t *testing.T) {
	d := domains.Domain{ID: "market", Keywords: []string{"가격", "거래량", "ETS"}}

	tests := []struct {
		name      string
		text      string
		wantScore float64
		wantCount int
	}{
		{
			name:      "all keywords present",
			text:      "EU ETS 가격 80유로 돌파, 거래량 증가세",
			wantScore: 3.2,
			wantCount: 3,
		},
		{
			name:      "case folded latin keyword",
			text:      "eu ets 시장 동향",
			wantScore: 1.1,
			wantCount: 1,
		},
		{
			name:      "keyword inside compound word",
			text:      "거래량지표 분석",
			wantScore: 1.1,
			wantCount: 1,
		},
		{
			name:      "no match",
			text:      "수소 생산 설비 증설",
			wantScore: 0,
			wantCount: 0,
		},
		{
			name:      "empty text",
			text:      "",
			wantScore: 0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Score(tt.text, d)
			if !almostEqual(got.Score, tt.wantScore) {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.MatchCount != tt.wantCount {
				t.Errorf("MatchCount = %d, want %d", got.MatchCount, tt.wantCount)
			}
		})
	}
}

func TestScoreOverlappingKeywords(t *testing.T) {
	// A keyword contained in another matched keyword still contributes.
	d := domains.Domain{ID: "policy", Keywords: []string{"탄소", "탄소세"}}

	got := classifier.Score("탄소세 도입 논의", d)

	if got.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2 (overlapping matches not deduplicated)", got.MatchCount)
	}
	want := 1.0 + 1.1
	if !almostEqual(got.Score, want) {
		t.Errorf("Score = %v, want %v", got.Score, want)
	}
}

func TestScoreNoKeywords(t *testing.T) {
	got := classifier.Score("아무 텍스트", domains.Domain{ID: "empty"})

	if got.Score != 0 || got.MatchCount != 0 {
		t.Errorf("keywordless domain scored %v with %d matches, want zero", got.Score, got.MatchCount)
	}
}

func TestScoreMatchedKeywordOrder(t *testing.T) {
	d := domains.Domain{ID: "policy", Keywords: []string{"가격", "탄소국경조정제도"}}

	got := classifier.Score("탄소국경조정제도로 가격 상승", d)

	if len(got.MatchedKeywords) != 2 {
		t.Fatalf("MatchedKeywords = %v, want 2 entries", got.MatchedKeywords)
	}
	if got.MatchedKeywords[0] != "탄소국경조정제도" {
		t.Errorf("MatchedKeywords[0] = %q, want heaviest keyword first", got.MatchedKeywords[0])
	}
}

func TestScoreMatchedKeywordCap(t *testing.T) {
	var kws []string
	var parts []string
	for i := range 12 {
		kw := fmt.Sprintf("keyword%02d", i)
		kws = append(kws, kw)
		parts = append(parts, kw)
	}
	d := domains.Domain{ID: "wide", Keywords: kws}

	got := classifier.Score(strings.Join(parts, " "), d)

	if len(got.MatchedKeywords) != 10 {
		t.Errorf("len(MatchedKeywords) = %d, want cap of 10", len(got.MatchedKeywords))
	}
	if got.MatchCount != 12 {
		t.Errorf("MatchCount = %d, want 12 (uncapped)", got.MatchCount)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
