package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidegate/vaultmirror/cmd"
	kerrors "github.com/tidegate/vaultmirror/internal/errors"
)

// exitMissingDependency distinguishes "a required external program is
// absent" from ordinary failures, so wrapper scripts can tell an
// unusable environment apart from a failed operation.
const exitMissingDependency = 2

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, kerrors.ErrDependencyMissing) {
			os.Exit(exitMissingDependency)
		}
		os.Exit(1)
	}
}
