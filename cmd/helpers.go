package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/ui"
)

// defaultPath is the subtree operated on when no path argument is given.
const defaultPath = store.Path("secret/")

// pathArg resolves the optional path argument of a command.
func pathArg(args []string) store.Path {
	if len(args) > 0 {
		return store.Path(args[0])
	}
	return defaultPath
}

// workingTree returns the tree rooted at the configured work directory.
func workingTree() *localtree.Tree {
	return localtree.New(baseFs, cfg.WorkDir)
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose, debug, or quiet mode. Returns the spinner and a function that
// should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// calls ui.EnsureNewline() on the final message before printing it. In quiet
// mode the final message is dropped entirely.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	interactive := !verbose && !debug && !quiet
	if interactive {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if interactive {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" && !quiet {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
		}
		// Clear FinalMSG so s.Stop() doesn't print it.
		s.FinalMSG = ""

		if interactive {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// printReports prints one dry-run report line per intended operation.
func printReports(reports []string) {
	fmt.Println()
	for _, line := range reports {
		fmt.Println("  " + ui.Warning.Sprint("[dry-run]") + " " + line)
	}
	fmt.Println()
	fmt.Println(ui.Info.Sprint("No changes made.") + " Run without " + ui.Code.Sprint("--dry-run") + " to execute.")
}
