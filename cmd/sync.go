package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tidegate/vaultmirror/internal/ui"
	"github.com/tidegate/vaultmirror/internal/workflows"
)

var (
	syncYes        bool
	syncKeepMirror bool
)

func init() {
	syncCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "apply deletions without asking")
	syncCmd.Flags().BoolVar(&syncKeepMirror, "keep-mirror", false, "keep the transient mirror tree after a successful sync")
}

func resetSyncCommandState() {
	syncYes = false
	syncKeepMirror = false
}

var syncCmd = &cobra.Command{
	Use:   "sync [path]",
	Short: "Make the store subtree exactly match the working tree",
	Long: `Dumps the remote subtree into a fresh transient mirror, diffs it
against the working tree, and applies the result: secrets present in
the store but absent locally are deleted, secrets that are new or
changed locally are written. The working tree is authoritative.

Sync always recurses, regardless of --recursive: a partial mirror
would produce an inconsistent deletion set. Unchanged secrets are
never rewritten, so no spurious versions accumulate in the store.

With --dry-run every intended operation is reported, nothing is
applied, and the mirror is left in place for inspection. A sync that
plans deletions asks for confirmation unless --yes is given.

The operation is not transactional; an interrupted sync is recovered
by simply running it again.

The path defaults to ` + "`secret/`" + ` when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathArg(args)
		Logger.Infof("Starting sync of %s against %s", path, cfg.WorkDir)
		spinner, cleanup := startSpinner(fmt.Sprintf("Syncing %s...", path))
		defer cleanup()

		opts := workflows.SyncOptions{
			Store:      newStore(cfg),
			Source:     workingTree(),
			Fs:         baseFs,
			Path:       path,
			DryRun:     cfg.DryRun,
			KeepMirror: syncKeepMirror,
		}

		plan, err := workflows.PlanSync(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to plan sync of " + ui.Path.Sprint(path.String())
			return Logger.ErrorfAndReturn("planning sync of %s failed: %w", path, err)
		}

		if plan.Diff.Empty() {
			if err := plan.Discard(); err != nil {
				Logger.Warnf("Failed to remove mirror tree: %v", err)
			}
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Store already matches " + ui.Path.Sprint(cfg.WorkDir) + ". Nothing to sync."
			return nil
		}

		if !cfg.DryRun && len(plan.Diff.ToDelete) > 0 && !syncYes {
			spinner.Stop()
			confirmed, err := confirmDeletions(len(plan.Diff.ToDelete))
			if err != nil || !confirmed {
				spinner.FinalMSG = ui.Warning.Sprint("Aborted.") + " No changes made.\n" +
					ui.Muted.Sprintf("mirror left at %s", plan.Mirror.Root())
				return nil
			}
		}

		result, err := workflows.ApplySync(cmd.Context(), plan, opts)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Sync of " + ui.Path.Sprint(path.String()) + " failed\n" +
				ui.Info.Sprint("→") + " Mirror left for inspection at " + ui.Path.Sprint(plan.Mirror.Root()) + "\n" +
				ui.Info.Sprint("→") + " Re-run " + ui.Code.Sprint("vaultmirror sync "+path.String()) + " to converge"
			return Logger.ErrorfAndReturn("applying sync of %s failed: %w", path, err)
		}

		if result.DryRun {
			spinner.Stop()
			spinner.FinalMSG = ""
			printReports(result.Reports)
			fmt.Println(ui.Muted.Sprintf("mirror left at %s", result.MirrorRoot))
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Store now matches " + ui.Path.Sprint(cfg.WorkDir) + "\n" +
			fmt.Sprintf("  Deleted %d secret(s), wrote %d secret(s).", len(result.Deleted), len(result.Written))
		if result.MirrorKept {
			finalMessage += "\n" + ui.Muted.Sprintf("mirror kept at %s", result.MirrorRoot)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

// confirmDeletions asks the operator to approve pending deletions.
func confirmDeletions(count int) (bool, error) {
	confirmed := false
	prompt := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %d secret(s) from the store?", count)).
		Description("These paths exist in the store but not in the working tree.").
		Value(&confirmed)
	if err := prompt.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
