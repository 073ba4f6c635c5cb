package reconcile

import (
	"context"
	"slices"

	"github.com/matzehuels/pkgsync/pkg/ensure"
	"github.com/matzehuels/pkgsync/pkg/icons"
	"github.com/matzehuels/pkgsync/pkg/manifest"
)

// DefaultTestLibs are dependencies that test packages may declare without
// importing them.
var DefaultTestLibs = []string{"jest", "ts-jest"}

// Versions resolves version ranges for many packages at once.
// *deps.Cache implements it.
type Versions interface {
	ResolveAll(ctx context.Context, names []string) (map[string]string, error)
}

// Scanner extracts module references from the sources below root.
// imports.Extractor implements it.
type Scanner interface {
	ExtractFiles(ctx context.Context, root string, patterns []string) ([]string, error)
}

// Exceptions lists the deliberate deviations of a package.
type Exceptions struct {
	Missing           []string          // imported but intentionally undeclared
	Unused            []string          // declared but intentionally not imported
	DifferentVersions []string          // pinned to a range other than the shared one
	Locals            map[string]string // package name -> directory of the workspace sibling
}

// Options configures the reconciliation of one package.
type Options struct {
	PkgPath  string
	Manifest *manifest.Manifest

	Versions   Versions
	Scanner    Scanner
	Writer     *ensure.Writer
	Icons      *icons.Generator // set only for the package that owns the icon assets
	Exceptions Exceptions

	Sources          []string // source globs, default imports.DefaultPatterns
	CSSImports       []string
	CSSModuleImports []string
	TestLibs         []string // added to DefaultTestLibs
	Namespace        string   // manifest key holding tool settings such as schemaDir
	NoUnused         bool
}

func (o Options) testLib(name string) bool {
	return slices.Contains(DefaultTestLibs, name) || slices.Contains(o.TestLibs, name)
}

func (o Options) writer() *ensure.Writer {
	if o.Writer == nil {
		return &ensure.Writer{}
	}
	return o.Writer
}

// Result is the outcome of reconciling one package.
type Result struct {
	Manifest *manifest.Manifest
	Messages []string
	Imports  []string // resolved package names referenced by the sources
	Halted   bool     // stopped before the project steps (no tsconfig.json)
}
