package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidegate/vaultmirror/internal/ui"
	"github.com/tidegate/vaultmirror/internal/workflows"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Write local JSON files back to the store",
	Long: `Enumerates every .json file under the working tree for the given path
and writes each file's content to the corresponding secret path. The
secret path is derived by stripping the working tree root and the
.json suffix; a file that strips to an implausible path fails the run.

Without --recursive only one directory level is imported. With
--dry-run every intended write is reported and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathArg(args)
		Logger.Infof("Starting import of %s from %s", path, cfg.WorkDir)
		spinner, cleanup := startSpinner(fmt.Sprintf("Importing %s...", path))
		defer cleanup()

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			Store:     newStore(cfg),
			Tree:      workingTree(),
			Path:      path,
			Recursive: cfg.Recursive,
			DryRun:    cfg.DryRun,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to import " + ui.Path.Sprint(path.String())
			return Logger.ErrorfAndReturn("import of %s failed: %w", path, err)
		}

		if result.DryRun {
			spinner.Stop()
			spinner.FinalMSG = ""
			if len(result.Reports) == 0 {
				fmt.Println(ui.Info.Sprint("No files to import."))
				return nil
			}
			printReports(result.Reports)
			return nil
		}

		if len(result.Written) == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " No JSON files found. Nothing to import."
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Imported %d secret(s) to %s",
			len(result.Written), ui.Path.Sprint(path.String()))
		return nil
	},
}
