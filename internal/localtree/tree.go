package localtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/store"
)

// Tree maps a remote secret hierarchy onto a filesystem subtree. A leaf
// path a/b/c becomes <root>/a/b/c.json; directory nodes map 1:1 onto
// directories with no suffix. All access goes through an afero.Fs so
// tests can run on an in-memory filesystem.
type Tree struct {
	fs   afero.Fs
	root string
}

// New returns a Tree rooted at root on the given filesystem.
func New(fs afero.Fs, root string) *Tree {
	return &Tree{fs: fs, root: root}
}

// Root returns the tree's root directory.
func (t *Tree) Root() string {
	return t.root
}

// LeafFile returns the local file for a leaf path.
func (t *Tree) LeafFile(p store.Path) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.IsDir() {
		return "", fmt.Errorf("%w: directory node %s has no leaf file", kerrors.ErrInvalidPath, p)
	}
	return filepath.Join(t.root, filepath.FromSlash(p.String())+".json"), nil
}

// DirPath returns the local directory for a directory path. Leaf-form
// input is accepted and treated as its directory form.
func (t *Tree) DirPath(p store.Path) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(t.root, filepath.FromSlash(p.Leaf().String())), nil
}

// PathFor derives the secret path for a local file by stripping the
// tree root and the .json suffix. Files outside the root, non-JSON
// files, and names that strip down to nothing are errors, never
// silently skipped.
func (t *Tree) PathFor(file string) (store.Path, error) {
	rel, err := filepath.Rel(t.root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s is outside tree root %s", kerrors.ErrInvalidPath, file, t.root)
	}
	slashed := filepath.ToSlash(rel)
	stem, ok := strings.CutSuffix(slashed, ".json")
	if !ok {
		return "", fmt.Errorf("%w: %s is not a .json file", kerrors.ErrInvalidPath, file)
	}
	p := store.Path(stem)
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s strips to an empty secret path", kerrors.ErrInvalidPath, file)
	}
	return p, nil
}

// WriteDoc writes a leaf's document as formatted JSON, creating parent
// directories as needed. The whole file is replaced on every write.
func (t *Tree) WriteDoc(p store.Path, doc json.RawMessage) error {
	file, err := t.LeafFile(p)
	if err != nil {
		return err
	}
	formatted, err := Format(doc)
	if err != nil {
		return fmt.Errorf("formatting document for %s: %w", p, err)
	}
	if err := t.fs.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrLocalIO, filepath.Dir(file), err)
	}
	if err := afero.WriteFile(t.fs, file, formatted, 0600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrLocalIO, file, err)
	}
	return nil
}

// ReadDoc returns the raw contents of a leaf's file.
func (t *Tree) ReadDoc(p store.Path) (json.RawMessage, error) {
	file, err := t.LeafFile(p)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(t.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrNotFound, file)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrLocalIO, file, err)
	}
	return data, nil
}

// Exists reports whether the leaf's file is present.
func (t *Tree) Exists(p store.Path) (bool, error) {
	file, err := t.LeafFile(p)
	if err != nil {
		return false, err
	}
	_, statErr := t.fs.Stat(file)
	if statErr == nil {
		return true, nil
	}
	if os.IsNotExist(statErr) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat %s: %v", kerrors.ErrLocalIO, file, statErr)
}

// Remove deletes the leaf's file. Removing an absent file is a no-op.
func (t *Tree) Remove(p store.Path) error {
	file, err := t.LeafFile(p)
	if err != nil {
		return err
	}
	if err := t.fs.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", kerrors.ErrLocalIO, file, err)
	}
	return nil
}

// MkdirAll materializes the directory for a directory node.
func (t *Tree) MkdirAll(p store.Path) error {
	dir, err := t.DirPath(p)
	if err != nil {
		return err
	}
	if err := t.fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrLocalIO, dir, err)
	}
	return nil
}

// RemoveAll deletes the entire subtree below root. Used to discard a
// transient mirror after reconciliation.
func (t *Tree) RemoveAll() error {
	if err := t.fs.RemoveAll(t.root); err != nil {
		return fmt.Errorf("%w: removing %s: %v", kerrors.ErrLocalIO, t.root, err)
	}
	return nil
}

// Leaves enumerates the secret paths of every .json file below the
// given directory path, sorted. With recursive false only the first
// directory level is scanned. A missing directory yields an empty set,
// which is how an empty remote subtree is represented.
func (t *Tree) Leaves(p store.Path, recursive bool) ([]store.Path, error) {
	base, err := t.DirPath(p)
	if err != nil {
		return nil, err
	}
	if _, err := t.fs.Stat(base); os.IsNotExist(err) {
		return nil, nil
	}

	pattern := "*.json"
	if recursive {
		pattern = "**/*.json"
	}

	var leaves []store.Path
	walkErr := afero.Walk(t.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walking %s: %v", kerrors.ErrLocalIO, path, err)
		}
		if info.IsDir() {
			if !recursive && path != base {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return fmt.Errorf("%w: %v", kerrors.ErrLocalIO, err)
		}
		match, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil || !match {
			return err
		}
		leaf, err := t.PathFor(path)
		if err != nil {
			return err
		}
		leaves = append(leaves, leaf)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i] < leaves[j] })
	return leaves, nil
}

// Format pretty-prints a JSON document with stable key order, so two
// dumps of the same payload are byte-identical and diffable.
func Format(doc json.RawMessage) ([]byte, error) {
	var value any
	if err := json.Unmarshal(doc, &value); err != nil {
		return nil, err
	}
	formatted, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(formatted, '\n'), nil
}

// DocsEqual compares two documents semantically: both sides are
// normalized through a compact re-marshal before comparison, so
// whitespace and key order differences do not register as changes.
// Invalid JSON on either side falls back to a raw byte comparison.
func DocsEqual(a, b []byte) bool {
	na, errA := normalize(a)
	nb, errB := normalize(b)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(na, nb)
}

func normalize(doc []byte) ([]byte, error) {
	var value any
	if err := json.Unmarshal(doc, &value); err != nil {
		return nil, err
	}
	return json.Marshal(value)
}
