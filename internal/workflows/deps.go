package workflows

import (
	"fmt"
	"strings"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/utils"
)

// DependencyResult holds the outcome of checking one external program.
type DependencyResult struct {
	Name   string
	Found  bool
	Detail string
}

// CheckDependencies verifies that each named external program resolves
// on PATH. It runs before any command logic so a missing tool is
// reported before the store is ever contacted. Returns
// errors.ErrDependencyMissing listing every absent program.
func CheckDependencies(runner utils.CommandRunner, names ...string) ([]DependencyResult, error) {
	results := make([]DependencyResult, 0, len(names))
	var missing []string
	for _, name := range names {
		result := DependencyResult{Name: name, Found: true}
		if err := runner.LookPath(name); err != nil {
			result.Found = false
			result.Detail = err.Error()
			missing = append(missing, name)
		}
		results = append(results, result)
	}
	if len(missing) > 0 {
		return results, fmt.Errorf("%w: %s", kerrors.ErrDependencyMissing, strings.Join(missing, ", "))
	}
	return results, nil
}
