package workflows

import (
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
)

// seedStore fills an in-memory store with leaf documents.
func seedStore(t *testing.T, docs map[store.Path]string) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	for p, doc := range docs {
		if err := m.Write(context.Background(), p, []byte(doc)); err != nil {
			t.Fatalf("Failed to seed store at %s: %v", p, err)
		}
	}
	return m
}

// seedTree fills a tree on an in-memory filesystem with leaf documents.
func seedTree(t *testing.T, fs afero.Fs, root string, docs map[store.Path]string) *localtree.Tree {
	t.Helper()
	tree := localtree.New(fs, root)
	for p, doc := range docs {
		if err := tree.WriteDoc(p, []byte(doc)); err != nil {
			t.Fatalf("Failed to seed tree at %s: %v", p, err)
		}
	}
	return tree
}

// assertPaths compares a path slice against the expected sequence.
func assertPaths(t *testing.T, label string, got []store.Path, want ...store.Path) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got: %v", label, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got: %v", label, want, got)
		}
	}
}
