package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgsync/pkg/cache"
	"github.com/matzehuels/pkgsync/pkg/config"
	"github.com/matzehuels/pkgsync/pkg/deps"
	"github.com/matzehuels/pkgsync/pkg/ensure"
	"github.com/matzehuels/pkgsync/pkg/icons"
	"github.com/matzehuels/pkgsync/pkg/integrations/npm"
	"github.com/matzehuels/pkgsync/pkg/manifest"
	"github.com/matzehuels/pkgsync/pkg/observability"
	"github.com/matzehuels/pkgsync/pkg/reconcile"
)

// Runner reconciles a workspace.
//
// Cache, Lookup, Formatter and Scanner are optional. When Lookup is nil the
// npm registry configured in Config is queried through Cache.
type Runner struct {
	Config    *config.Config
	Cache     cache.Cache
	Lookup    deps.Lookup
	Formatter ensure.Formatter
	Scanner   reconcile.Scanner
	Refresh   bool // bypass cached registry responses
	Logger    *log.Logger

	// Progress, when set, is called before each package is reconciled.
	Progress func(pkg Package, index, total int)
}

// NewRunner creates a runner for cfg. A nil cfg uses [config.Default].
func NewRunner(cfg *config.Config, c cache.Cache, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Config: cfg, Cache: c, Logger: logger}
}

// Run reconciles every package below root. The returned report covers
// the packages processed so far, also when an error stops the run.
func (r *Runner) Run(ctx context.Context, root string) (*Report, error) {
	start := time.Now()
	report := &Report{}
	defer func() { report.Duration = time.Since(start) }()

	pkgs, err := Discover(root, r.Config.Workspace)
	if err != nil {
		return report, err
	}
	r.logger().Debug("discovered packages", "count", len(pkgs), "root", root)

	versions := deps.NewCache(deps.Chain(deps.NewWorkspace(Versions(pkgs)), r.lookup()), nil)
	locals := Locals(pkgs)
	writer := &ensure.Writer{Formatter: r.Formatter}

	for i, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if r.Progress != nil {
			r.Progress(pkg, i, len(pkgs))
		}
		pr, err := r.runPackage(ctx, pkg, r.options(pkg, versions, locals, writer))
		if err != nil {
			return report, err
		}
		report.Packages = append(report.Packages, *pr)
	}

	r.logger().Info("workspace reconciled",
		"packages", len(report.Packages),
		"messages", report.Messages(),
		"lookups", versions.Len(),
		"duration", time.Since(start))
	return report, nil
}

func (r *Runner) runPackage(ctx context.Context, pkg Package, opts reconcile.Options) (*PackageReport, error) {
	hooks := observability.Pipeline()
	hooks.OnPackageStart(ctx, pkg.Name)
	start := time.Now()

	pr := &PackageReport{Name: pkg.Name, Dir: pkg.Dir}
	res, err := reconcile.Package(ctx, opts)
	if err == nil {
		pr.Messages = res.Messages
		pr.Halted = res.Halted
		pr.Written, err = manifest.Write(filepath.Join(pkg.Path, "package.json"), res.Manifest)
		if pr.Written {
			pr.Messages = append(pr.Messages, "Updated package.json")
		}
	}
	pr.Duration = time.Since(start)
	hooks.OnPackageComplete(ctx, pkg.Name, len(pr.Messages), pr.Duration, err)
	if err != nil {
		r.logger().Error("reconcile failed", "package", pkg.Name, "err", err)
		return nil, err
	}

	r.logger().Debug("reconciled",
		"package", pkg.Name,
		"messages", len(pr.Messages),
		"halted", pr.Halted,
		"duration", pr.Duration)
	return pr, nil
}

func (r *Runner) options(pkg Package, versions *deps.Cache, locals map[string]string, writer *ensure.Writer) reconcile.Options {
	cfg := r.Config
	settings := cfg.Package(pkg.Name)
	opts := reconcile.Options{
		PkgPath:  pkg.Path,
		Manifest: pkg.Manifest,
		Versions: versions,
		Scanner:  r.Scanner,
		Writer:   writer,
		Exceptions: reconcile.Exceptions{
			Missing:           settings.Missing,
			Unused:            settings.Unused,
			DifferentVersions: settings.DifferentVersions,
			Locals:            locals,
		},
		Sources:          cfg.Sources,
		CSSImports:       settings.CSSImports,
		CSSModuleImports: settings.CSSModuleImports,
		TestLibs:         cfg.TestLibs,
		Namespace:        cfg.Namespace,
		NoUnused:         settings.NoUnused,
	}
	if cfg.Icons.Package != "" && cfg.Icons.Package == pkg.Name {
		opts.Icons = &icons.Generator{
			Writer: writer,
			Options: icons.Options{
				Dynamic:    cfg.Icons.Dynamic,
				IconClass:  cfg.Icons.Class,
				IconModule: cfg.Icons.Module,
				CSSPrefix:  cfg.Icons.CSSPrefix,
			},
		}
	}
	return opts
}

func (r *Runner) lookup() deps.Lookup {
	if r.Lookup != nil {
		return r.Lookup
	}
	client := npm.NewClient(r.Cache, r.Config.Cache.TTL.Duration).WithBaseURL(r.Config.Registry)
	return &deps.Registry{
		Source:      client,
		RangePrefix: r.Config.RangePrefix,
		Refresh:     r.Refresh,
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
