package deps

import (
	"context"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/observability"
)

// Cache memoizes version lookups for the duration of a run.
// It is safe for concurrent use.
type Cache struct {
	lookup  Lookup
	workers int

	mu       sync.RWMutex
	versions map[string]string
	group    singleflight.Group
}

// NewCache creates a cache in front of lookup, pre-populated with seed.
// The seed map is copied.
func NewCache(lookup Lookup, seed map[string]string) *Cache {
	versions := make(map[string]string, len(seed))
	maps.Copy(versions, seed)
	return &Cache{lookup: lookup, workers: DefaultWorkers, versions: versions}
}

// SetWorkers bounds the number of concurrent lookups in ResolveAll.
func (c *Cache) SetWorkers(n int) {
	if n > 0 {
		c.workers = n
	}
}

// Version returns the cached version for name, looking it up on a miss.
// Concurrent callers asking for the same name share one lookup.
func (c *Cache) Version(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	v, ok := c.versions[name]
	c.mu.RUnlock()
	if ok {
		observability.Cache().OnCacheHit(ctx, "version")
		return v, nil
	}
	observability.Cache().OnCacheMiss(ctx, "version")

	res, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.RLock()
		v, ok := c.versions[name]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}
		if c.lookup == nil {
			return "", ErrUnknown
		}
		v, err := c.lookup.Version(ctx, name)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.versions[name] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeLookup, err, "resolve %s", name)
	}
	return res.(string), nil
}

// ResolveAll looks up every name concurrently and returns the versions.
// The first failure cancels the remaining lookups and is returned.
func (c *Cache) ResolveAll(ctx context.Context, names []string) (map[string]string, error) {
	names = slices.Compact(slices.Sorted(slices.Values(names)))
	out := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, name := range names {
		g.Go(func() error {
			v, err := c.Version(gctx, name)
			out[i] = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(names))
	for i, name := range names {
		result[name] = out[i]
	}
	return result, nil
}

// Snapshot returns a copy of the cached versions.
func (c *Cache) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.versions)
}

// Len returns the number of cached versions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.versions)
}
