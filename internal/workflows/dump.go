package workflows

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
)

// DumpOptions configures the dump workflow.
type DumpOptions struct {
	// Store is the remote store client.
	Store store.Store

	// Tree is the local tree the subtree is materialized into.
	Tree *localtree.Tree

	// Path is the remote directory to dump. Leaf-form input is treated
	// as its directory form.
	Path store.Path

	// Recursive controls descent into directory children. When false,
	// directory children are skipped entirely.
	Recursive bool

	// DryRun reports intended file writes and directory creations
	// instead of performing them. Store reads still happen, so the
	// report reflects real remote content.
	DryRun bool
}

// DumpResult contains the outcome of a dump operation.
type DumpResult struct {
	// LeavesWritten is the count of secret files materialized.
	LeavesWritten int

	// DirsCreated is the count of directories created for directory nodes.
	DirsCreated int

	// SkippedDirs lists directory children skipped in non-recursive mode.
	SkippedDirs []store.Path

	// Reports holds one line per intended operation in dry-run mode.
	Reports []string

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Dump recursively walks the remote subtree at opts.Path and writes
// every leaf as a formatted JSON file under the tree root. Traversal is
// depth-first in listing order, one store call at a time, so output is
// reproducible for diffing. Dump creates and overwrites files but never
// deletes. In dry-run mode the walk still reads the store but every
// local write and directory creation is reported instead of performed.
//
// A subtree with no children at the top produces an empty result rather
// than an error, so an empty remote side is representable; deeper
// failures abort the walk.
func Dump(ctx context.Context, opts DumpOptions) (*DumpResult, error) {
	if err := opts.Path.Validate(); err != nil {
		return nil, err
	}

	result := &DumpResult{DryRun: opts.DryRun}
	if err := dumpInto(ctx, opts, opts.Path.Dir(), result, true); err != nil {
		return nil, err
	}
	return result, nil
}

func dumpInto(ctx context.Context, opts DumpOptions, path store.Path, result *DumpResult, top bool) error {
	children, err := opts.Store.List(ctx, path)
	if err != nil {
		if top && errors.Is(err, kerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	for _, child := range children {
		childPath := path.Join(child)
		if childPath.IsDir() {
			if !opts.Recursive {
				result.SkippedDirs = append(result.SkippedDirs, childPath)
				continue
			}
			if opts.DryRun {
				result.Reports = append(result.Reports, fmt.Sprintf("would create directory %s", childPath))
			} else if err := opts.Tree.MkdirAll(childPath); err != nil {
				return err
			}
			result.DirsCreated++
			if err := dumpInto(ctx, opts, childPath, result, false); err != nil {
				return err
			}
			continue
		}

		doc, err := opts.Store.Read(ctx, childPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", childPath, err)
		}
		if opts.DryRun {
			result.Reports = append(result.Reports, fmt.Sprintf("would write %s (%d bytes)", childPath, len(doc)))
		} else if err := opts.Tree.WriteDoc(childPath, doc); err != nil {
			return err
		}
		result.LeavesWritten++
	}
	return nil
}
