package localtree

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/store"
)

func newMemTree(t *testing.T) *Tree {
	t.Helper()
	return New(afero.NewMemMapFs(), "/work")
}

func TestLeafFileMapping(t *testing.T) {
	tree := newMemTree(t)

	file, err := tree.LeafFile("secret/app/db")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := filepath.Join("/work", "secret", "app", "db.json")
	if file != want {
		t.Errorf("Expected %s, got: %s", want, file)
	}

	if _, err := tree.LeafFile("secret/app/"); !errors.Is(err, kerrors.ErrInvalidPath) {
		t.Errorf("Directory path should not map to a leaf file, got: %v", err)
	}
}

func TestPathForRoundTrip(t *testing.T) {
	tree := newMemTree(t)

	file, err := tree.LeafFile("secret/app/db")
	if err != nil {
		t.Fatalf("LeafFile failed: %v", err)
	}
	p, err := tree.PathFor(file)
	if err != nil {
		t.Fatalf("PathFor failed: %v", err)
	}
	if p != "secret/app/db" {
		t.Errorf("Round trip mismatch: got %s", p)
	}
}

func TestPathForRejectsBadFiles(t *testing.T) {
	tree := newMemTree(t)

	tests := []struct {
		name string
		file string
	}{
		{"outside root", "/elsewhere/a.json"},
		{"not json", "/work/secret/a.txt"},
		{"empty after stripping", "/work/.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tree.PathFor(tt.file); !errors.Is(err, kerrors.ErrInvalidPath) {
				t.Errorf("Expected ErrInvalidPath for %s, got: %v", tt.file, err)
			}
		})
	}
}

func TestWriteDocFormatsAndReads(t *testing.T) {
	tree := newMemTree(t)

	if err := tree.WriteDoc("secret/a", []byte(`{"x":1,"a":"b"}`)); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}
	data, err := tree.ReadDoc("secret/a")
	if err != nil {
		t.Fatalf("ReadDoc failed: %v", err)
	}
	want := "{\n  \"a\": \"b\",\n  \"x\": 1\n}\n"
	if string(data) != want {
		t.Errorf("Expected formatted JSON %q, got: %q", want, data)
	}

	exists, err := tree.Exists("secret/a")
	if err != nil || !exists {
		t.Errorf("Expected leaf to exist, got: %v, %v", exists, err)
	}
}

func TestWriteDocRejectsInvalidJSON(t *testing.T) {
	tree := newMemTree(t)
	if err := tree.WriteDoc("secret/a", []byte(`not json`)); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestReadDocAbsent(t *testing.T) {
	tree := newMemTree(t)
	if _, err := tree.ReadDoc("secret/missing"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	tree := newMemTree(t)
	if err := tree.WriteDoc("secret/a", []byte(`{}`)); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}
	if err := tree.Remove("secret/a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := tree.Remove("secret/a"); err != nil {
		t.Errorf("Second remove should be a no-op, got: %v", err)
	}
}

func TestLeavesRecursive(t *testing.T) {
	tree := newMemTree(t)
	for _, p := range []store.Path{"secret/a", "secret/b/c", "secret/b/d", "other/x"} {
		if err := tree.WriteDoc(p, []byte(`{}`)); err != nil {
			t.Fatalf("WriteDoc(%s) failed: %v", p, err)
		}
	}

	leaves, err := tree.Leaves("secret/", true)
	if err != nil {
		t.Fatalf("Leaves failed: %v", err)
	}
	want := []store.Path{"secret/a", "secret/b/c", "secret/b/d"}
	if len(leaves) != len(want) {
		t.Fatalf("Expected %v, got: %v", want, leaves)
	}
	for i := range want {
		if leaves[i] != want[i] {
			t.Errorf("Expected %v, got: %v", want, leaves)
		}
	}
}

func TestLeavesOneLevel(t *testing.T) {
	tree := newMemTree(t)
	for _, p := range []store.Path{"secret/a", "secret/b/c"} {
		if err := tree.WriteDoc(p, []byte(`{}`)); err != nil {
			t.Fatalf("WriteDoc(%s) failed: %v", p, err)
		}
	}

	leaves, err := tree.Leaves("secret/", false)
	if err != nil {
		t.Fatalf("Leaves failed: %v", err)
	}
	if len(leaves) != 1 || leaves[0] != "secret/a" {
		t.Errorf("One-level scan should only see secret/a, got: %v", leaves)
	}
}

func TestLeavesMissingDirIsEmpty(t *testing.T) {
	tree := newMemTree(t)
	leaves, err := tree.Leaves("secret/", true)
	if err != nil {
		t.Fatalf("Expected no error for a missing directory, got: %v", err)
	}
	if len(leaves) != 0 {
		t.Errorf("Expected empty set, got: %v", leaves)
	}
}

func TestDocsEqualSemantics(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", `{"x":1}`, `{"x":1}`, true},
		{"whitespace", `{"x":1}`, "{\n  \"x\": 1\n}\n", true},
		{"key order", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"different value", `{"x":1}`, `{"x":2}`, false},
		{"invalid json equal bytes", `not json`, `not json`, true},
		{"invalid json different bytes", `not json`, `also not`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocsEqual([]byte(tt.a), []byte(tt.b)); got != tt.want {
				t.Errorf("DocsEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
