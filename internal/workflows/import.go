package workflows

import (
	"context"
	"fmt"

	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Store is the remote store client.
	Store store.Store

	// Tree is the local tree the files are read from.
	Tree *localtree.Tree

	// Path is the subtree to import.
	Path store.Path

	// Recursive controls whether nested directories are scanned.
	// When false only one directory level is considered.
	Recursive bool

	// DryRun reports intended writes without performing them.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// Written lists the secret paths written, in order.
	Written []store.Path

	// Reports holds one line per intended operation in dry-run mode.
	Reports []string

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Import enumerates every .json file under the tree's directory for
// opts.Path and writes each file's content to the corresponding remote
// path. File-to-path derivation is strict: a file whose derived path is
// implausible fails the run rather than being skipped.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if err := opts.Path.Validate(); err != nil {
		return nil, err
	}

	leaves, err := opts.Tree.Leaves(opts.Path, opts.Recursive)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{DryRun: opts.DryRun}
	st := opts.Store
	if opts.DryRun {
		st = store.NewDryRun(st, func(format string, args ...any) {
			result.Reports = append(result.Reports, fmt.Sprintf(format, args...))
		})
	}

	for _, leaf := range leaves {
		doc, err := opts.Tree.ReadDoc(leaf)
		if err != nil {
			return nil, err
		}
		if err := st.Write(ctx, leaf, doc); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, leaf)
	}
	return result, nil
}
