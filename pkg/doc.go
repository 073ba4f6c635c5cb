// Package pkg holds the libraries behind the pkgsync command.
//
// pkgsync keeps the packages of a JavaScript/TypeScript monorepo consistent
// with their sources. For every workspace package it
//
//  1. updates declared dependency ranges to the shared ones,
//  2. adds dependencies that sources import but package.json lacks,
//  3. reports dependencies nothing imports,
//  4. keeps typedoc.json, tdoptions.json, tsconfig.json references and the
//     style index aligned with the manifest,
//  5. checks that schemas and styles are published, and
//  6. regenerates icon tables from SVG assets.
//
// The packages, bottom up:
//
//   - [errors]: coded errors shared by all packages
//   - [cache], [httputil], [integrations]: registry access with response
//     caching and retries
//   - [manifest]: order-preserving package.json and project-file editing
//   - [imports]: module references from TypeScript sources via tree-sitter
//   - [deps]: version lookups (workspace, npm) behind a single-flight cache
//   - [render], [ensure]: generated-file templates and idempotent writes
//   - [icons]: icon imports and CSS generated from style/icons
//   - [reconcile]: the per-package step pipeline
//   - [pipeline]: workspace discovery and the multi-package runner
//   - [config]: pkgsync.toml
//   - [observability]: hooks for logging and metrics
//
// A minimal run over one workspace:
//
//	cfg, _ := config.Load("pkgsync.toml")
//	c, _ := pipeline.OpenCache(ctx, cfg.Cache)
//	defer c.Close()
//
//	report, err := pipeline.NewRunner(cfg, c, logger).Run(ctx, ".")
package pkg
