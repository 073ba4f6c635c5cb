package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgsync/pkg/pipeline"
)

// ErrMessages is returned in CI mode when any package reported a message.
var ErrMessages = errors.New("workspace is not in sync")

func (c *CLI) syncCommand() *cobra.Command {
	var ci bool
	cmd := &cobra.Command{
		Use:   "sync [root]",
		Short: "Reconcile every workspace package",
		Long: `Reconcile every workspace package below root (default: the current
directory). Dependencies are added and updated in package.json, project files
and generated sources are rewritten, and every inconsistency that needs a
human is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd, rootArg(args), ci)
		},
	}
	cmd.Flags().BoolVar(&ci, "ci", false, "exit with an error when any package reports a message")
	return cmd
}

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [root]",
		Short: "Reconcile and fail when anything was out of sync",
		Long: `Run sync and exit with an error when any package reported a message.
Intended for CI, where a clean tree must stay clean.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd, rootArg(args), true)
		},
	}
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func (c *CLI) runSync(cmd *cobra.Command, root string, ci bool) error {
	ctx := cmd.Context()
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig(abs)
	if err != nil {
		return err
	}

	runner, rc := c.newRunner(ctx, cfg)
	defer rc.Close()

	spinner := newSpinnerWithContext(ctx, "Discovering packages...")
	runner.Progress = func(pkg pipeline.Package, i, total int) {
		spinner.SetMessage(fmt.Sprintf("[%d/%d] %s", i+1, total, pkg.Name))
	}
	prog := newProgress(c.Logger)
	spinner.Start()
	report, err := runner.Run(ctx, abs)
	spinner.Stop()

	if report != nil {
		printReport(report)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Reconciled %d packages", len(report.Packages)))

	if report.Clean() {
		printSuccess("Workspace is in sync")
		return nil
	}
	if ci {
		printError("%d messages in %d packages", report.Messages(), len(report.WithMessages()))
		return ErrMessages
	}
	printWarning("%d messages in %d packages", report.Messages(), len(report.WithMessages()))
	return nil
}
