package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct {
	// Store is the remote store client.
	Store store.Store

	// Source is the local source-of-truth tree.
	Source *localtree.Tree

	// Fs hosts the transient mirror tree.
	Fs afero.Fs

	// Path is the remote subtree to reconcile.
	Path store.Path

	// DryRun reports every intended operation and performs none,
	// leaving the mirror in place for inspection.
	DryRun bool

	// KeepMirror retains the mirror even after a successful apply.
	KeepMirror bool

	// MirrorRoot overrides the generated mirror location. Tests use
	// this to keep the mirror on an in-memory filesystem.
	MirrorRoot string
}

// SyncPlan is the outcome of the planning phase: a fresh mirror of the
// remote state and the diff against the source tree. The mirror is
// exclusively owned by this plan and must not be shared.
type SyncPlan struct {
	Path   store.Path
	Mirror *localtree.Tree
	Diff   *DiffResult
}

// Discard removes the plan's mirror tree.
func (p *SyncPlan) Discard() error {
	return p.Mirror.RemoveAll()
}

// SyncResult contains the outcome of applying a sync plan.
type SyncResult struct {
	// Deleted and Written list the paths applied, in order.
	Deleted []store.Path
	Written []store.Path

	// Reports holds one line per intended operation in dry-run mode.
	Reports []string

	// DryRun indicates whether this was a dry-run.
	DryRun bool

	// MirrorRoot is where the mirror was (or still is, when kept).
	MirrorRoot string

	// MirrorKept is true when the mirror remains for inspection.
	MirrorKept bool
}

// PlanSync dumps the remote subtree into a fresh transient mirror and
// diffs it against the source tree. Recursion is always forced on,
// regardless of any non-recursive flag: a partial mirror would produce
// an inconsistent deletion set. On failure the partially dumped mirror
// is left in place and its location is carried in the error.
func PlanSync(ctx context.Context, opts SyncOptions) (*SyncPlan, error) {
	if err := opts.Path.Validate(); err != nil {
		return nil, err
	}

	mirrorRoot := opts.MirrorRoot
	if mirrorRoot == "" {
		mirrorRoot = filepath.Join(os.TempDir(), "vaultmirror-"+uuid.NewString())
	}
	mirror := localtree.New(opts.Fs, mirrorRoot)

	if _, err := Dump(ctx, DumpOptions{
		Store:     opts.Store,
		Tree:      mirror,
		Path:      opts.Path,
		Recursive: true,
		// The mirror is not the source root: it must hold real files
		// even when the overall sync is a dry-run.
		DryRun: false,
	}); err != nil {
		// The partial mirror stays on disk; name it so the operator
		// can inspect or remove it.
		return nil, fmt.Errorf("dumping into mirror %s: %w", mirrorRoot, err)
	}

	diff, err := DiffTrees(mirror, opts.Source, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("diffing against mirror %s: %w", mirrorRoot, err)
	}
	return &SyncPlan{Path: opts.Path, Mirror: mirror, Diff: diff}, nil
}

// ApplySync applies a plan: deletions first, then writes, one blocking
// store call at a time. The operation is not transactional; an
// interrupted run is recovered by planning and applying again, which
// converges on the same end state. After a successful non-dry-run apply
// the mirror is removed unless opts.KeepMirror is set; dry-runs always
// leave it for inspection.
func ApplySync(ctx context.Context, plan *SyncPlan, opts SyncOptions) (*SyncResult, error) {
	result := &SyncResult{DryRun: opts.DryRun, MirrorRoot: plan.Mirror.Root()}

	st := opts.Store
	if opts.DryRun {
		st = store.NewDryRun(st, func(format string, args ...any) {
			result.Reports = append(result.Reports, fmt.Sprintf(format, args...))
		})
	}

	for _, path := range plan.Diff.ToDelete {
		if err := st.Delete(ctx, path); err != nil {
			return nil, fmt.Errorf("deleting %s: %w", path, err)
		}
		if !opts.DryRun {
			// Keep the mirror consistent with the store so a partially
			// applied run re-plans cleanly.
			if err := plan.Mirror.Remove(path); err != nil {
				return nil, err
			}
		}
		result.Deleted = append(result.Deleted, path)
	}

	for _, path := range plan.Diff.ToWrite {
		doc, err := opts.Source.ReadDoc(path)
		if err != nil {
			return nil, err
		}
		if err := st.Write(ctx, path, doc); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Written = append(result.Written, path)
	}

	if opts.DryRun || opts.KeepMirror {
		result.MirrorKept = true
		return result, nil
	}
	if err := plan.Discard(); err != nil {
		return nil, err
	}
	return result, nil
}
