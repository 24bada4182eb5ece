package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carbonlens/triage/internal/arbiter"
	"github.com/carbonlens/triage/internal/classifier"
	"github.com/carbonlens/triage/internal/domains"
	"github.com/carbonlens/triage/internal/generator"
	"github.com/carbonlens/triage/internal/pipeline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry() *domains.Registry {
	return domains.NewRegistry([]domains.Domain{
		{ID: "policy", DisplayName: "정책", Keywords: []string{"파리협정", "NDC", "법률"}},
		{ID: "market", DisplayName: "시장", Keywords: []string{"가격", "거래량", "ETS"}},
	}, testLogger())
}

// textService decides per item text: assigns policy, proposes a hydrogen
// domain for texts mentioning 수소, and echoes the text in the rationale.
type textService struct{}

func (textService) Decide(ctx context.Context, req arbiter.Request) (string, error) {
	if strings.Contains(req.Text, "수소") {
		return fmt.Sprintf(`{
			"assigned_domain_ids": ["policy"],
			"proposals": [{
				"suggested_id": "hydrogen",
				"suggested_display_name": "수소",
				"candidate_keywords": ["수소", "연료전지"]
			}],
			"rationale": %q,
			"agreement_score": 0.6
		}`, req.Text), nil
	}
	return fmt.Sprintf(`{
		"assigned_domain_ids": ["policy"],
		"rationale": %q,
		"agreement_score": 0.8
	}`, req.Text), nil
}

func newOrchestrator(t *testing.T, reg *domains.Registry, svc arbiter.DecisionService) *pipeline.Orchestrator {
	t.Helper()

	cls := classifier.New(reg, classifier.DefaultThresholds(), testLogger())

	var arb *arbiter.Arbiter
	if svc != nil {
		var err error
		arb, err = arbiter.New(svc, reg, time.Second, 64, testLogger())
		if err != nil {
			t.Fatalf("arbiter.New() error = %v", err)
		}
	}

	gen := generator.New(reg, nil, testLogger())
	return pipeline.New(cls, arb, gen, 3, testLogger())
}

func batchItems() []pipeline.Item {
	items := make([]pipeline.Item, 0, 10)
	for i := range 7 {
		items = append(items, pipeline.Item{
			ID:   uuid.New(),
			Text: fmt.Sprintf("ETS 가격 거래량 동향 %02d", i),
		})
	}
	items = append(items,
		pipeline.Item{ID: uuid.New(), Text: "정체불명 주제 하나"},
		pipeline.Item{ID: uuid.New(), Text: "수소 연료전지 신사업 진출"},
		pipeline.Item{ID: uuid.New(), Text: "정체불명 주제 둘"},
	)
	return items
}

func TestProcessBatch(t *testing.T) {
	reg := testRegistry()
	o := newOrchestrator(t, reg, textService{})
	items := batchItems()

	got, err := o.ProcessBatch(context.Background(), items)
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if got.TotalProcessed != 10 {
		t.Errorf("TotalProcessed = %d, want 10", got.TotalProcessed)
	}
	if got.TotalEscalated != 3 {
		t.Errorf("TotalEscalated = %d, want 3", got.TotalEscalated)
	}
	if len(got.Errors) != 0 {
		t.Errorf("Errors = %v, want none", got.Errors)
	}

	for i, ir := range got.Items {
		if ir.Index != i {
			t.Errorf("Items[%d].Index = %d, want %d", i, ir.Index, i)
		}
		if ir.Item.ID != items[i].ID {
			t.Errorf("Items[%d] holds item %s, want %s (input order lost)", i, ir.Item.ID, items[i].ID)
		}
	}

	for i := range 7 {
		ir := got.Items[i]
		if ir.Escalated {
			t.Errorf("Items[%d] escalated unexpectedly: %+v", i, ir.Classification)
		}
		if ir.Escalation != nil {
			t.Errorf("Items[%d] carries arbitration result without escalation", i)
		}
		if len(ir.AssignedDomains) != 1 || ir.AssignedDomains[0] != "market" {
			t.Errorf("Items[%d].AssignedDomains = %v, want [market]", i, ir.AssignedDomains)
		}
	}

	for _, i := range []int{7, 8, 9} {
		ir := got.Items[i]
		if !ir.Escalated {
			t.Errorf("Items[%d] not escalated", i)
			continue
		}
		if ir.Escalation == nil {
			t.Errorf("Items[%d] escalated but has no arbitration result", i)
			continue
		}
		if len(ir.AssignedDomains) != 1 || ir.AssignedDomains[0] != "policy" {
			t.Errorf("Items[%d].AssignedDomains = %v, want arbitration [policy]", i, ir.AssignedDomains)
		}
		if !strings.Contains(ir.Escalation.Rationale, items[i].Text) {
			t.Errorf("Items[%d] carries another item's arbitration: rationale %q", i, ir.Escalation.Rationale)
		}
	}

	if len(got.NewDomains) != 1 || got.NewDomains[0] != "hydrogen" {
		t.Errorf("NewDomains = %v, want [hydrogen]", got.NewDomains)
	}
	if !reg.Has("hydrogen") {
		t.Error("proposed domain not registered")
	}
	if got.CompletedAt.Before(got.StartedAt) {
		t.Error("CompletedAt precedes StartedAt")
	}
}

func TestProcessBatchWithoutArbiter(t *testing.T) {
	o := newOrchestrator(t, testRegistry(), nil)

	got, err := o.ProcessBatch(context.Background(), []pipeline.Item{
		{ID: uuid.New(), Text: "정체불명 주제"},
	})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if got.TotalEscalated != 1 {
		t.Errorf("TotalEscalated = %d, want 1 (flag counted even without arbiter)", got.TotalEscalated)
	}
	ir := got.Items[0]
	if !ir.Escalated {
		t.Error("item not flagged as escalated")
	}
	if ir.Escalation != nil {
		t.Error("arbitration result present without an arbiter")
	}
	if len(ir.AssignedDomains) != 1 || ir.AssignedDomains[0] != "policy" {
		t.Errorf("AssignedDomains = %v, want rule-based [policy]", ir.AssignedDomains)
	}
}

func TestProcessBatchEmptyRegistry(t *testing.T) {
	o := newOrchestrator(t, domains.NewRegistry(nil, testLogger()), nil)

	_, err := o.ProcessBatch(context.Background(), []pipeline.Item{{Text: "아무 텍스트"}})
	if !errors.Is(err, domains.ErrEmptyRegistry) {
		t.Errorf("ProcessBatch() error = %v, want ErrEmptyRegistry", err)
	}
}

func TestProcessBatchEmptyInput(t *testing.T) {
	o := newOrchestrator(t, testRegistry(), textService{})

	got, err := o.ProcessBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if got.TotalProcessed != 0 || got.TotalEscalated != 0 || len(got.Items) != 0 {
		t.Errorf("empty batch produced %+v", got)
	}
}

type failingService struct{}

func (failingService) Decide(ctx context.Context, req arbiter.Request) (string, error) {
	return "", errors.New("service unavailable")
}

func TestProcessBatchArbitrationFailure(t *testing.T) {
	o := newOrchestrator(t, testRegistry(), failingService{})

	got, err := o.ProcessBatch(context.Background(), []pipeline.Item{
		{ID: uuid.New(), Text: "정체불명 주제"},
	})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v, want per-item degradation", err)
	}

	ir := got.Items[0]
	if ir.Escalation == nil || !ir.Escalation.Degraded {
		t.Fatalf("Escalation = %+v, want degraded fallback", ir.Escalation)
	}
	if len(ir.AssignedDomains) != 1 || ir.AssignedDomains[0] != "policy" {
		t.Errorf("AssignedDomains = %v, want default [policy]", ir.AssignedDomains)
	}
}

type badProposalService struct{}

func (badProposalService) Decide(ctx context.Context, req arbiter.Request) (string, error) {
	return `{
		"assigned_domain_ids": ["policy"],
		"proposals": [{"suggested_id": "nameless"}],
		"agreement_score": 0.5
	}`, nil
}

func TestProcessBatchRejectedProposal(t *testing.T) {
	reg := testRegistry()
	o := newOrchestrator(t, reg, badProposalService{})

	got, err := o.ProcessBatch(context.Background(), []pipeline.Item{
		{ID: uuid.New(), Text: "정체불명 주제"},
	})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if len(got.Errors) != 1 {
		t.Fatalf("Errors = %v, want one rejected proposal", got.Errors)
	}
	if !strings.Contains(got.Errors[0], "nameless") {
		t.Errorf("Errors[0] = %q, want it to name the proposal", got.Errors[0])
	}
	if len(got.NewDomains) != 0 {
		t.Errorf("NewDomains = %v, want none", got.NewDomains)
	}
	if reg.Has("nameless") {
		t.Error("rejected proposal reached the registry")
	}
}

func TestProcessBatchUsesTitleForClassification(t *testing.T) {
	o := newOrchestrator(t, testRegistry(), nil)

	got, err := o.ProcessBatch(context.Background(), []pipeline.Item{
		{ID: uuid.New(), Title: "EU ETS 가격 거래량 분석", Text: "본문 없음"},
	})
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if got.Items[0].Classification.PrimaryDomainID != "market" {
		t.Errorf("PrimaryDomainID = %q, want market (title keywords counted)",
			got.Items[0].Classification.PrimaryDomainID)
	}
}
