package domains

import "context"

// Store persists the domain roster. The in-process Registry remains the
// source of truth for classification; a store hydrates it at startup and
// records runtime registrations so they survive restarts.
type Store interface {
	GetAll(ctx context.Context) ([]Domain, error)
	Get(ctx context.Context, id string) (*Domain, error)
	Put(ctx context.Context, d Domain) error
}

// Hydrate loads all persisted domains into the registry. Seed ids already
// present in the registry are skipped; everything else is registered as a
// runtime domain in stored order.
func Hydrate(ctx context.Context, reg *Registry, store Store) (int, error) {
	stored, err := store.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, d := range stored {
		if reg.Has(d.ID) {
			continue
		}
		d.Seed = false
		if err := reg.Put(d); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
