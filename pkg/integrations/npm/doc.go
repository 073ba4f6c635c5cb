// Package npm looks up the latest published version of packages on the npm
// registry (https://registry.npmjs.org).
//
// # Usage
//
//	client := npm.NewClient(store, 24*time.Hour)
//	v, err := client.LatestVersion(ctx, "@lumino/widgets", false)
//	// v == "2.3.1"
//
// Only the "latest" dist-tag is read. The abbreviated metadata document
// (application/vnd.npm.install-v1+json) is requested to keep responses small.
//
// # Caching
//
// Versions are stored in the supplied cache under the "npm:" prefix for the
// configured TTL. Pass refresh=true to bypass the cache.
package npm
