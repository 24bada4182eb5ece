package arbiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/carbonlens/triage/internal/domains"
)

// Defaults for arbiter construction.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultCacheSize = 256
)

// Arbiter validates external arbitration decisions against the live
// registry. Identical items are memoized in an LRU keyed by content hash so
// duplicate content across batches does not re-invoke the external service.
type Arbiter struct {
	svc      DecisionService
	registry *domains.Registry
	timeout  time.Duration
	cache    *lru.Cache[string, Result]
	logger   *slog.Logger
}

// New creates an arbiter over the given decision service and registry.
// A non-positive timeout or cache size falls back to the defaults.
func New(svc DecisionService, registry *domains.Registry, timeout time.Duration, cacheSize int, logger *slog.Logger) (*Arbiter, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create arbitration cache: %w", err)
	}

	return &Arbiter{
		svc:      svc,
		registry: registry,
		timeout:  timeout,
		cache:    cache,
		logger:   logger.With("system", "arbiter"),
	}, nil
}

// Arbitrate sends one item to the decision service and returns a validated
// result. It never returns an error: transport failures, timeouts, and
// malformed or invalid payloads all degrade to the default domain with the
// failure recorded in Rationale and AgreementScore zeroed.
func (a *Arbiter) Arbitrate(ctx context.Context, text, title, sourceLabel string) Result {
	key := cacheKey(text)
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	req := Request{
		Text:        text,
		Title:       title,
		SourceLabel: sourceLabel,
		Roster:      a.registry.Snapshot(),
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	payload, err := a.svc.Decide(callCtx, req)
	if err != nil {
		a.logger.Warn("decision service call failed", "title", title, "error", err)
		return a.fallback(fmt.Sprintf("decision service unavailable: %v", err))
	}

	parsed, err := parseDecision(payload)
	if err != nil {
		a.logger.Warn("decision payload unparseable", "title", title, "error", err)
		return a.fallback(fmt.Sprintf("decision response unparseable: %v", err))
	}

	result := a.validate(parsed)
	a.cache.Add(key, result)
	return result
}

// validate filters the parsed decision against the registry: unknown
// assigned ids are dropped with a warning, an empty remainder falls back to
// the default domain, and the agreement score is clamped to [0,1].
func (a *Arbiter) validate(d decision) Result {
	assigned := make([]string, 0, len(d.AssignedDomainIDs))
	for _, id := range d.AssignedDomainIDs {
		if !a.registry.Has(id) {
			a.logger.Warn("dropping unknown domain id from decision", "domain_id", id)
			continue
		}
		assigned = append(assigned, id)
	}

	result := Result{
		AssignedDomains: assigned,
		Proposals:       d.Proposals,
		Rationale:       d.Rationale,
		AgreementScore:  clamp01(d.AgreementScore),
	}

	if len(result.AssignedDomains) == 0 {
		def, err := a.registry.Default()
		if err != nil {
			result.Degraded = true
			result.Rationale = appendNote(result.Rationale, "no valid domain assignment and registry is empty")
			return result
		}
		result.AssignedDomains = []string{def.ID}
		result.Rationale = appendNote(result.Rationale, fmt.Sprintf("no valid domains named; assigned default %s", def.ID))
	}

	return result
}

// fallback builds the safe-default result used whenever the external call or
// its payload cannot be trusted: default domain, no proposals, zero score.
func (a *Arbiter) fallback(rationale string) Result {
	result := Result{
		Rationale:      rationale,
		AgreementScore: 0,
		Degraded:       true,
	}

	if def, err := a.registry.Default(); err == nil {
		result.AssignedDomains = []string{def.ID}
	}

	return result
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func appendNote(rationale, note string) string {
	if rationale == "" {
		return note
	}
	return rationale + "; " + note
}
