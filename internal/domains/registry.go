package domains

import (
	"log/slog"
	"sync"
	"time"
)

// Registry holds the live domain roster. It supports concurrent reads while
// a registration from another item's escalation path is in flight: readers
// take a cloned snapshot under a read lock, writers replace or append a
// single keyed entry under the write lock. Insertion order is preserved and
// drives tie-breaking and default-domain selection downstream.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]Domain
	logger *slog.Logger
}

// NewRegistry creates a registry populated with the given seed domains.
// Seed domains are marked protected and survive Reset.
func NewRegistry(seeds []Domain, logger *slog.Logger) *Registry {
	r := &Registry{
		byID:   make(map[string]Domain, len(seeds)),
		logger: logger.With("system", "domains"),
	}

	for _, d := range seeds {
		if d.ID == "" {
			continue
		}
		d.Seed = true
		if d.CreatedAt.IsZero() {
			d.CreatedAt = time.Now()
		}
		if _, exists := r.byID[d.ID]; !exists {
			r.order = append(r.order, d.ID)
		}
		r.byID[d.ID] = d.Clone()
	}

	return r
}

// Snapshot returns a consistent copy of all domains in insertion order.
// The copy is safe to iterate while the registry is concurrently mutated.
func (r *Registry) Snapshot() []Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Domain, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

// Get returns the domain with the given id, if registered.
func (r *Registry) Get(id string) (Domain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return Domain{}, false
	}
	return d.Clone(), true
}

// Has reports whether a domain with the given id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok
}

// Len returns the number of registered domains.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Default returns the first domain in registry order. It is the deterministic
// fallback for unmatched content and for invalid arbitration results.
func (r *Registry) Default() (Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return Domain{}, ErrEmptyRegistry
	}
	return r.byID[r.order[0]].Clone(), nil
}

// Put registers a domain, appending it to registry order if the id is new and
// overwriting the previous entry otherwise. Overwriting a seed domain is
// refused with ErrSeedProtected.
func (r *Registry) Put(d Domain) error {
	if d.ID == "" {
		return ErrInvalidDomain
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[d.ID]; ok && existing.Seed {
		return ErrSeedProtected
	}

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	if _, ok := r.byID[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.byID[d.ID] = d.Clone()

	r.logger.Info("domain registered",
		"id", d.ID,
		"display_name", d.DisplayName,
		"keywords", len(d.Keywords),
	)
	return nil
}

// Reset removes all runtime-registered domains, keeping seeds. Intended for
// tests and for scheduled runs that should start from the seed roster.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := r.order[:0]
	for _, id := range r.order {
		if r.byID[id].Seed {
			order = append(order, id)
		} else {
			delete(r.byID, id)
		}
	}
	r.order = order
}
