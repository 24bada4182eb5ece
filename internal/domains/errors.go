package domains

import "errors"

// Domain errors for registry and store operations.
var (
	// ErrEmptyRegistry indicates a registry with no domains at all. This is
	// a configuration fault: classification against an empty roster has no
	// meaningful answer, so callers must treat it as fatal rather than
	// degrade silently.
	ErrEmptyRegistry = errors.New("domain registry is empty")

	// ErrSeedProtected is returned when a write would overwrite a compiled-in
	// seed domain. Runtime-registered domains are last-write-wins; seeds are
	// immutable for the life of the process.
	ErrSeedProtected = errors.New("seed domain cannot be overwritten")

	// ErrNotFound is returned by store lookups for unknown domain ids.
	ErrNotFound = errors.New("domain not found")

	// ErrInvalidDomain is returned when a domain is missing its id.
	ErrInvalidDomain = errors.New("domain id required")
)
