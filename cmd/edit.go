package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/ui"
	"github.com/tidegate/vaultmirror/internal/workflows"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Open a secret's local JSON file in the editor",
	Long: `Opens the local representation of a single secret in the configured
editor ($EDITOR, or the defaults file). When no local copy exists yet
the secret is fetched from the store first.

Editing never writes to the store. With --dry-run the intended fetch
and editor invocation are reported and nothing happens. Persist
changes afterwards with:

  vaultmirror import <path>

Directory paths (trailing slash) are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := store.Path(args[0])
		Logger.Infof("Editing %s with %s", path, cfg.Editor)

		result, err := workflows.Edit(cmd.Context(), workflows.EditOptions{
			Store:  newStore(cfg),
			Tree:   workingTree(),
			Runner: runner,
			Editor: cfg.Editor,
			Path:   path,
			DryRun: cfg.DryRun,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("edit of %s failed: %w", path, err)
		}
		if result.DryRun {
			printReports(result.Reports)
			return nil
		}
		if result.EditorFailed {
			// The editor's exit status is informational only.
			Logger.Warnf("Editor exited with a nonzero status")
		}

		if !quiet {
			cmd.Println(ui.Success.Sprint("✓") + " Edited " + ui.Path.Sprint(result.File))
			cmd.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vaultmirror import "+path.String()) + " to persist changes")
		}
		return nil
	},
}
