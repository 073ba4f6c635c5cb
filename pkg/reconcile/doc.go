// Package reconcile brings one package of a monorepo in line with its own
// sources.
//
// [Package] runs a fixed sequence of [Step]s over an immutable [State]:
//
//  1. update declared versions from the shared version cache
//  2. stop early when the package has no tsconfig.json
//  3. sync typedoc.json
//  4. extract imports from src/ and resolve them to package names
//  5. add dependencies that are imported but not declared
//  6. regenerate style/index.css (and style/index.js)
//  7. report declared dependencies that nothing imports
//  8. sync tdoptions.json and the tsconfig.json project references
//  9. check that schemas and styles are published
//  10. regenerate icon tables when the package owns them
//  11. normalize publish metadata
//
// Every observation is reported as a message, in step order. Messages are
// never sorted or deduplicated; a clean package produces none. Lookup and
// parse failures abort the package with an error and no state is returned,
// so a caller never persists a half-reconciled manifest.
//
// The manifest itself is not written here. The caller persists
// [Result.Manifest], which lets dry runs and CI checks share the code path.
package reconcile
