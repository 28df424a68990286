package workflows

import (
	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
)

// DiffResult holds the two disjoint path sets a sync must apply.
type DiffResult struct {
	// ToDelete lists leaves present in the mirror of the remote state
	// but absent from the source tree.
	ToDelete []store.Path

	// ToWrite lists leaves present in the source tree that are new or
	// content-different compared to the mirror.
	ToWrite []store.Path
}

// Empty reports whether the diff requires no operations.
func (d *DiffResult) Empty() bool {
	return len(d.ToDelete) == 0 && len(d.ToWrite) == 0
}

// DiffTrees compares a freshly dumped mirror against the source tree
// below path, purely by local file presence and content. The remote
// store is never consulted a second time. Content comparison is
// semantic-JSON (see localtree.DocsEqual), so formatting differences in
// hand-edited source files do not produce spurious writes.
func DiffTrees(mirror, source *localtree.Tree, path store.Path) (*DiffResult, error) {
	mirrorLeaves, err := mirror.Leaves(path, true)
	if err != nil {
		return nil, err
	}
	sourceLeaves, err := source.Leaves(path, true)
	if err != nil {
		return nil, err
	}

	inSource := make(map[store.Path]bool, len(sourceLeaves))
	for _, leaf := range sourceLeaves {
		inSource[leaf] = true
	}
	inMirror := make(map[store.Path]bool, len(mirrorLeaves))
	for _, leaf := range mirrorLeaves {
		inMirror[leaf] = true
	}

	diff := &DiffResult{}
	for _, leaf := range mirrorLeaves {
		if !inSource[leaf] {
			diff.ToDelete = append(diff.ToDelete, leaf)
		}
	}
	for _, leaf := range sourceLeaves {
		if !inMirror[leaf] {
			diff.ToWrite = append(diff.ToWrite, leaf)
			continue
		}
		sourceDoc, err := source.ReadDoc(leaf)
		if err != nil {
			return nil, err
		}
		mirrorDoc, err := mirror.ReadDoc(leaf)
		if err != nil {
			return nil, err
		}
		if !localtree.DocsEqual(sourceDoc, mirrorDoc) {
			diff.ToWrite = append(diff.ToWrite, leaf)
		}
	}
	return diff, nil
}
