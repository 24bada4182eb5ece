// Command triage runs one routing batch end to end: it hydrates the domain
// registry, classifies every item, escalates the uncertain ones to the
// decision service, registers any proposed domains, and prints the batch
// result as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/carbonlens/triage/internal/arbiter"
	"github.com/carbonlens/triage/internal/classifier"
	"github.com/carbonlens/triage/internal/config"
	"github.com/carbonlens/triage/internal/decision"
	"github.com/carbonlens/triage/internal/domains"
	"github.com/carbonlens/triage/internal/generator"
	"github.com/carbonlens/triage/internal/pipeline"
)

func main() {
	var (
		input      = flag.String("input", "-", "Items JSON file, or - for stdin")
		noEscalate = flag.Bool("no-escalate", false, "Skip the decision service; rule-based results only")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("triage starting",
		"version", cfg.Version,
		"env", cfg.Env(),
		"decision_model", cfg.Decision.Model,
	)

	ctx := context.Background()

	if err := run(ctx, cfg, logger, *input, *noEscalate); err != nil {
		logger.Error("triage failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, input string, noEscalate bool) error {
	registry := domains.NewRegistry(domains.Seeds(), logger)

	var store domains.Store
	if cfg.Database.Enabled() {
		pg, err := domains.OpenPostgres(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return fmt.Errorf("open domain store: %w", err)
		}
		defer pg.Close()
		store = pg

		loaded, err := domains.Hydrate(ctx, registry, pg)
		if err != nil {
			return fmt.Errorf("hydrate registry: %w", err)
		}
		logger.Info("registry hydrated", "runtime_domains", loaded, "total", registry.Len())
	}

	items, err := readItems(input)
	if err != nil {
		return err
	}

	cls := classifier.New(registry, cfg.Classifier.Thresholds(), logger)
	gen := generator.New(registry, store, logger)

	var arb *arbiter.Arbiter
	if !noEscalate {
		svc, err := decision.NewGemini(ctx, cfg.Decision.Model, logger)
		if err != nil {
			return fmt.Errorf("create decision service: %w", err)
		}

		arb, err = arbiter.New(svc, registry, cfg.Arbiter.TimeoutDuration(), cfg.Arbiter.CacheSize, logger)
		if err != nil {
			return fmt.Errorf("create arbiter: %w", err)
		}
	}

	orch := pipeline.New(cls, arb, gen, cfg.Pipeline.Concurrency, logger)

	result, err := orch.ProcessBatch(ctx, items)
	if err != nil {
		return fmt.Errorf("process batch: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readItems(input string) ([]pipeline.Item, error) {
	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open items file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []pipeline.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
