// Package deps resolves the version ranges written into dependency maps.
//
// # Lookups
//
// A [Lookup] maps a package name to the range that should be declared for
// it. Three implementations cover a monorepo:
//
//   - [Workspace] answers for packages that live in the repository,
//     pinning them to ^<local version>
//   - [Registry] asks the npm registry for the latest release and prefixes
//     it with the configured range operator (~ by default)
//   - [Chain] tries lookups in order until one knows the name
//
// # Version cache
//
// [Cache] sits in front of a Lookup and is shared by every package
// reconciled in one run. It is seeded by the caller (for example with the
// versions the previous run produced), filled lazily, and coalesces
// concurrent requests for the same name so the registry sees at most one
// request per package:
//
//	cache := deps.NewCache(deps.Chain(workspace, registry), nil)
//	versions, err := cache.ResolveAll(ctx, []string{"react", "@lumino/widgets"})
//
// Lookup failures are returned as LOOKUP_FAILED errors naming the package.
package deps
