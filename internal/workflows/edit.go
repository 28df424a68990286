package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/utils"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	// Store is the remote store client, used only to materialize the
	// leaf locally when no local copy exists yet.
	Store store.Store

	// Tree is the working tree holding the editable file.
	Tree *localtree.Tree

	// Runner invokes the external editor.
	Runner utils.CommandRunner

	// Editor is the interactive editor program.
	Editor string

	// Path is the leaf to edit.
	Path store.Path

	// DryRun reports the intended fetch and editor invocation instead
	// of touching the working tree or launching anything.
	DryRun bool
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	// File is the local file handed to the editor.
	File string

	// Fetched is true when the leaf was dumped from the store first
	// because no local copy existed.
	Fetched bool

	// EditorFailed records a nonzero editor exit. The exit status of
	// the editor is informational only and never fails the workflow.
	EditorFailed bool

	// Reports holds one line per intended operation in dry-run mode.
	Reports []string

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Edit hands a leaf's local representation to the external editor.
// Directory paths are rejected before any filesystem or store access.
// Editing never writes to the store; persisting the change is a
// separate import invocation by the caller. In dry-run mode the
// intended fetch and editor invocation are reported and nothing is
// fetched or launched.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	if err := opts.Path.Validate(); err != nil {
		return nil, err
	}
	if opts.Path.IsDir() {
		return nil, fmt.Errorf("%w: cannot edit directory node %s", kerrors.ErrInvalidPath, opts.Path)
	}

	result := &EditResult{DryRun: opts.DryRun}
	file, err := opts.Tree.LeafFile(opts.Path)
	if err != nil {
		return nil, err
	}
	result.File = file

	exists, err := opts.Tree.Exists(opts.Path)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		if !exists {
			result.Reports = append(result.Reports, fmt.Sprintf("would fetch %s into %s", opts.Path, file))
		}
		result.Reports = append(result.Reports, fmt.Sprintf("would edit %s with %s", file, opts.Editor))
		return result, nil
	}
	if !exists {
		doc, err := opts.Store.Read(ctx, opts.Path)
		if err != nil {
			return nil, err
		}
		if err := opts.Tree.WriteDoc(opts.Path, doc); err != nil {
			return nil, err
		}
		result.Fetched = true
	}

	if err := opts.Runner.RunInteractive(ctx, opts.Editor, file); err != nil {
		result.EditorFailed = true
	}
	return result, nil
}
