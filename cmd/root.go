package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tidegate/vaultmirror/internal/config"
	logger "github.com/tidegate/vaultmirror/internal/logging"
	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/utils"
	"github.com/tidegate/vaultmirror/internal/workflows"
)

var (
	workDir   string
	recursive bool
	dryRun    bool
	verbose   bool
	debug     bool
	quiet     bool

	// Logger is shared by every command; built in PersistentPreRunE.
	Logger logger.Logger

	// cfg is the immutable run configuration, built once per invocation
	// and passed into every workflow.
	cfg config.Config

	// runner, baseFs and newStore are package variables so tests can
	// substitute fakes without touching the real vault binary or disk.
	runner utils.CommandRunner = utils.NewRunner()
	baseFs afero.Fs            = afero.NewOsFs()

	newStore = func(cfg config.Config) store.Store {
		return store.NewVaultCLI(runner, cfg.VaultBinary, cfg.KVVersion)
	}

	RootCmd = &cobra.Command{
		Use:   "vaultmirror",
		Short: "Mirror a vault secret hierarchy onto a local JSON file tree",
		Long: `Vaultmirror materializes a vault secret subtree as local JSON files,
pushes local edits back, and synchronizes the store to exactly match a
local source-of-truth tree, including deletions.

A leaf path a/b/c maps to <work-dir>/a/b/c.json; directory nodes map
onto directories. Files hold the secret's data payload only.

Run 'vaultmirror help <command>' for details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{Verbose: verbose, Debug: debug, Quiet: quiet}

			defaults, err := config.LoadDefaults(config.DefaultsPath())
			if err != nil {
				Logger.Warnf("Ignoring unreadable defaults file: %v", err)
				defaults = config.FileDefaults{}
			}
			cfg = config.New(config.Flags{
				WorkDir:   workDir,
				Recursive: recursive,
				DryRun:    dryRun,
				Verbose:   verbose,
				Quiet:     quiet,
			}, defaults, os.Getenv("EDITOR"))
			Logger.Debugf("Config: workdir=%s recursive=%t dry-run=%t vault=%s editor=%s",
				cfg.WorkDir, cfg.Recursive, cfg.DryRun, cfg.VaultBinary, cfg.Editor)

			// Verify external programs before any store interaction.
			required := []string{cfg.VaultBinary}
			if cmd.Name() == "edit" {
				required = append(required, cfg.Editor)
			}
			if _, err := workflows.CheckDependencies(runner, required...); err != nil {
				return fmt.Errorf("checking external dependencies: %w", err)
			}
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&workDir, "work-dir", "w", "", "working tree root (default: defaults file, then current directory)")
	RootCmd.PersistentFlags().BoolVarP(&recursive, "recursive", "r", false, "descend into directory nodes")
	RootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "report mutating operations without performing them")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress everything below errors")

	RootCmd.AddCommand(dumpCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(syncCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	workDir = ""
	recursive = false
	dryRun = false
	verbose = false
	debug = false
	quiet = false
	resetSyncCommandState()
}

// SetRunner substitutes the command runner for testing.
func SetRunner(r utils.CommandRunner) {
	runner = r
}

// SetFs substitutes the base filesystem for testing.
func SetFs(fs afero.Fs) {
	baseFs = fs
}

// SetStoreFactory substitutes the store constructor for testing.
func SetStoreFactory(factory func(config.Config) store.Store) {
	newStore = factory
}
