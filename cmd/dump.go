package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidegate/vaultmirror/internal/ui"
	"github.com/tidegate/vaultmirror/internal/workflows"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [path]",
	Short: "Materialize a remote subtree as local JSON files",
	Long: `Recursively walks the remote subtree and writes every secret as a
formatted JSON file under the working tree, creating directories for
directory nodes. Only the secret's data payload is written; store
metadata is discarded.

Without --recursive, directory children are skipped. Dump creates and
overwrites files but never deletes anything locally. With --dry-run
every intended write is reported and nothing is touched locally.

The path defaults to ` + "`secret/`" + ` when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathArg(args)
		Logger.Infof("Starting dump of %s into %s", path, cfg.WorkDir)
		spinner, cleanup := startSpinner(fmt.Sprintf("Dumping %s...", path))
		defer cleanup()

		result, err := workflows.Dump(cmd.Context(), workflows.DumpOptions{
			Store:     newStore(cfg),
			Tree:      workingTree(),
			Path:      path,
			Recursive: cfg.Recursive,
			DryRun:    cfg.DryRun,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to dump " + ui.Path.Sprint(path.String())
			return Logger.ErrorfAndReturn("dump of %s failed: %w", path, err)
		}

		if result.DryRun {
			spinner.Stop()
			spinner.FinalMSG = ""
			if len(result.Reports) == 0 {
				fmt.Println(ui.Info.Sprint("Nothing to dump."))
				return nil
			}
			printReports(result.Reports)
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Dumped %d secret(s) from %s",
			result.LeavesWritten, ui.Path.Sprint(path.String()))
		if len(result.SkippedDirs) > 0 {
			finalMessage += "\n" + ui.Info.Sprint("→") +
				fmt.Sprintf(" Skipped %d directory node(s); use %s to descend",
					len(result.SkippedDirs), ui.Code.Sprint("--recursive"))
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
