// Package integrations provides the HTTP plumbing for package registry APIs.
//
// pkgsync only talks to the npm registry ([npm]), but the shared [Client]
// keeps registry-specific code small:
//
//	c := integrations.NewClient(store, "npm:", 24*time.Hour, nil)
//	var doc registryDoc
//	err := c.Cached(ctx, "left-pad", false, &doc, func() error {
//	    return c.Get(ctx, url, &doc)
//	})
//
// Clients handle:
//   - HTTP requests with retry on transient failures ([httputil.Retry])
//   - Response caching through any [cache.Cache] backend
//   - Status mapping to [ErrNotFound], [ErrNetwork] and rate-limit errors
//
// [npm]: github.com/matzehuels/pkgsync/pkg/integrations/npm
// [cache.Cache]: github.com/matzehuels/pkgsync/pkg/cache.Cache
// [httputil.Retry]: github.com/matzehuels/pkgsync/pkg/httputil.Retry
package integrations
