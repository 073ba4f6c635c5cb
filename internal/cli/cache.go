package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgsync/pkg/cache"
	"github.com/matzehuels/pkgsync/pkg/config"
	"github.com/matzehuels/pkgsync/pkg/pipeline"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached registry responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return err
			}
			if cfg.Backend != config.BackendFile {
				printInfo("Nothing to clear for the %s backend", cfg.Backend)
				return nil
			}

			dir, err := pipeline.CacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return err
			}
			dir, err := pipeline.CacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheConfig returns the cache settings of the nearest pkgsync.toml, or
// the defaults when there is none.
func (c *CLI) cacheConfig() (config.Cache, error) {
	path := c.flags.config
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return config.Default().Cache, nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Cache{}, err
	}
	anchorCacheDir(cfg, path)
	return cfg.Cache, nil
}

// anchorCacheDir resolves a relative cache.dir against the directory of the
// config file that set it.
func anchorCacheDir(cfg *config.Config, path string) {
	if dir := cfg.Cache.Dir; dir != "" && !filepath.IsAbs(dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), dir)
	}
}
