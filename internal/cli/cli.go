// Package cli implements the pkgsync command-line interface.
//
// The commands are:
//   - sync: reconcile every workspace package and rewrite generated files
//   - check: like sync, but fail when any package reported a message
//   - cache: inspect or clear the registry response cache
//   - completion: generate shell completion scripts
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgsync/pkg/buildinfo"
	"github.com/matzehuels/pkgsync/pkg/cache"
	"github.com/matzehuels/pkgsync/pkg/config"
	"github.com/matzehuels/pkgsync/pkg/ensure"
	"github.com/matzehuels/pkgsync/pkg/observability"
	"github.com/matzehuels/pkgsync/pkg/pipeline"
)

const appName = "pkgsync"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	flags  globalFlags
}

// globalFlags override pkgsync.toml for a single invocation.
type globalFlags struct {
	config    string
	registry  string
	formatter string
	noCache   bool
	refresh   bool
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pkgsync keeps monorepo package manifests in sync with their sources",
		Long: `pkgsync reconciles the package.json of every workspace package against the
modules its TypeScript sources import, keeps typedoc and tsconfig project
files aligned, checks what gets published and regenerates icon tables.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.config, "config", "", "path to "+config.FileName+" (default: <root>/"+config.FileName+")")
	pf.StringVar(&c.flags.registry, "registry", "", "npm registry URL")
	pf.StringVar(&c.flags.formatter, "formatter", "", `formatter command, e.g. "prettier --stdin-filepath"`)
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the registry response cache")
	pf.BoolVar(&c.flags.refresh, "refresh", false, "ignore cached registry responses")

	root.AddCommand(c.syncCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration for the workspace at root and applies
// the command-line overrides.
func (c *CLI) loadConfig(root string) (*config.Config, error) {
	path := c.flags.config
	if path == "" {
		path = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	anchorCacheDir(cfg, path)
	c.Logger.Debug("loaded config", "path", path, "workspace", cfg.Workspace)

	if c.flags.registry != "" {
		cfg.Registry = c.flags.registry
	}
	if c.flags.formatter != "" {
		cfg.Formatter = strings.Fields(c.flags.formatter)
	}
	if c.flags.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	return cfg, cfg.Validate()
}

// newRunner creates a pipeline runner and the cache it owns. The caller
// closes the cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, cache.Cache) {
	rc, err := pipeline.OpenCache(ctx, cfg.Cache)
	if err != nil {
		c.Logger.Warn("response cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		rc = cache.NewNullCache()
	}

	observability.SetPipelineHooks(newLogHooks(c.Logger))
	observability.SetHTTPHooks(newLogHooks(c.Logger))

	r := pipeline.NewRunner(cfg, rc, c.Logger)
	r.Refresh = c.flags.refresh
	if f := ensure.ParseCommand(cfg.Formatter); f != nil {
		r.Formatter = f
	}
	return r, rc
}
