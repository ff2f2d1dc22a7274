package catalog

import (
	"context"
	"sync"
)

// Resolver memoizes catalog code -> id lookups for the process lifetime.
// Catalogs are near-static reference tables, so there is no TTL and no
// invalidation. Concurrent misses may race and do duplicate lookups; both
// compute the same value, so last-writer-wins is fine.
type Resolver struct {
	repo  Repository
	mu    sync.RWMutex
	cache map[string]string
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{
		repo:  repo,
		cache: make(map[string]string),
	}
}

// Resolve returns the persisted id for catalog+code, consulting the cache
// first. Misses hit the repository; ErrCodeNotFound is not cached.
func (r *Resolver) Resolve(ctx context.Context, catalog Name, code string) (string, error) {
	key := string(catalog) + ":" + code

	r.mu.RLock()
	id, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := r.repo.LookupID(ctx, catalog, code)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[key] = id
	r.mu.Unlock()

	return id, nil
}
