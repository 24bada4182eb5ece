// Package pipeline sequences classification, escalation, and domain
// generation over a batch of items. Classification runs per item with no
// shared mutable state; arbitration calls fan out concurrently under a
// bounded errgroup because they are independent and I/O bound.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/carbonlens/triage/internal/arbiter"
	"github.com/carbonlens/triage/internal/classifier"
	"github.com/carbonlens/triage/internal/generator"
)

// DefaultConcurrency bounds simultaneous arbitration calls so a large batch
// cannot overwhelm the decision service.
const DefaultConcurrency = 5

// Orchestrator runs batches through the routing stages. The arbiter is
// optional: without one, items flagged for escalation keep their rule-based
// assignment and are still counted as escalated.
type Orchestrator struct {
	classifier  *classifier.Classifier
	arbiter     *arbiter.Arbiter
	generator   *generator.Generator
	concurrency int
	logger      *slog.Logger
}

// New creates an orchestrator. A non-positive concurrency falls back to
// DefaultConcurrency.
func New(
	cls *classifier.Classifier,
	arb *arbiter.Arbiter,
	gen *generator.Generator,
	concurrency int,
	logger *slog.Logger,
) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		classifier:  cls,
		arbiter:     arb,
		generator:   gen,
		concurrency: concurrency,
		logger:      logger.With("system", "pipeline"),
	}
}

// ProcessBatch routes every item and returns the aggregated result. Output
// order matches input order by index regardless of arbitration completion
// order. Only an empty registry aborts the batch; individual arbitration
// failures degrade per item and malformed proposals are logged and skipped.
func (o *Orchestrator) ProcessBatch(ctx context.Context, items []Item) (*BatchResult, error) {
	result := &BatchResult{
		BatchID:        uuid.New(),
		TotalProcessed: len(items),
		NewDomains:     []string{},
		Items:          make([]ItemResult, len(items)),
		StartedAt:      time.Now(),
	}

	if err := o.classifyStage(items, result); err != nil {
		return nil, err
	}

	if err := o.escalateStage(ctx, result); err != nil {
		return nil, err
	}

	o.generateStage(ctx, result)
	o.finalizeAssignments(result)

	result.CompletedAt = time.Now()

	o.logger.Info("batch complete",
		"batch_id", result.BatchID,
		"processed", result.TotalProcessed,
		"escalated", result.TotalEscalated,
		"new_domains", len(result.NewDomains),
		"duration", result.CompletedAt.Sub(result.StartedAt),
	)
	return result, nil
}

func (o *Orchestrator) classifyStage(items []Item, result *BatchResult) error {
	for i, item := range items {
		text := item.Text
		if item.Title != "" {
			text = item.Title + " " + item.Text
		}

		cls, err := o.classifier.Classify(text)
		if err != nil {
			return fmt.Errorf("classify item %d: %w", i, err)
		}

		result.Items[i] = ItemResult{
			Index:          i,
			Item:           item,
			Classification: cls,
			Escalated:      cls.NeedsEscalation,
		}
		if cls.NeedsEscalation {
			result.TotalEscalated++
		}
	}
	return nil
}

// escalateStage fans arbitration out across escalated items. Each goroutine
// writes only its own slice element, so no locking is needed; Arbitrate
// itself never returns an error.
func (o *Orchestrator) escalateStage(ctx context.Context, result *BatchResult) error {
	if o.arbiter == nil || result.TotalEscalated == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i := range result.Items {
		if !result.Items[i].Escalated {
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			item := result.Items[i].Item
			res := o.arbiter.Arbitrate(gctx, item.Text, item.Title, item.SourceLabel)
			result.Items[i].Escalation = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("escalation stage: %w", err)
	}
	return nil
}

// generateStage registers proposed domains in item order. Duplicate ids
// within a batch are last-write-wins in the registry but reported once.
func (o *Orchestrator) generateStage(ctx context.Context, result *BatchResult) {
	if o.generator == nil {
		return
	}

	seen := make(map[string]bool)
	for _, ir := range result.Items {
		if ir.Escalation == nil {
			continue
		}
		for _, p := range ir.Escalation.Proposals {
			if !o.generator.Register(ctx, p) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("item %d: proposal %q rejected", ir.Index, p.SuggestedID))
				continue
			}
			if !seen[p.SuggestedID] {
				seen[p.SuggestedID] = true
				result.NewDomains = append(result.NewDomains, p.SuggestedID)
			}
		}
	}
}

// finalizeAssignments resolves each item's final domain list: the validated
// arbitration assignment when present, otherwise the rule-based primary.
func (o *Orchestrator) finalizeAssignments(result *BatchResult) {
	for i := range result.Items {
		ir := &result.Items[i]
		if ir.Escalation != nil && len(ir.Escalation.AssignedDomains) > 0 {
			ir.AssignedDomains = append([]string(nil), ir.Escalation.AssignedDomains...)
			continue
		}
		ir.AssignedDomains = []string{ir.Classification.PrimaryDomainID}
	}
}
