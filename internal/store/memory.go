package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
)

// Memory is an in-memory Store. It backs the test suites for the
// traversal and reconciliation code so they run without a vault binary,
// and doubles as a scratch store for offline experiments.
type Memory struct {
	mu   sync.RWMutex
	docs map[Path]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[Path]json.RawMessage)}
}

// List implements Store. Child names are sorted so traversal order is
// deterministic, matching the listing order guarantee of the real CLI.
func (m *Memory) List(ctx context.Context, path Path) ([]string, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	prefix := path.Dir().String()

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var children []string
	for leaf := range m.docs {
		rest, ok := strings.CutPrefix(leaf.String(), prefix)
		if !ok || rest == "" {
			continue
		}
		name := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name = rest[:i+1] // directory child, keep the slash
		}
		if !seen[name] {
			seen[name] = true
			children = append(children, name)
		}
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %s has no children", kerrors.ErrNotFound, path)
	}
	sort.Strings(children)
	return children, nil
}

// Read implements Store.
func (m *Memory) Read(ctx context.Context, path Path) (json.RawMessage, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if path.IsDir() {
		return nil, fmt.Errorf("%w: cannot read directory node %s", kerrors.ErrInvalidPath, path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotFound, path)
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, nil
}

// Write implements Store.
func (m *Memory) Write(ctx context.Context, path Path, doc json.RawMessage) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if path.IsDir() {
		return fmt.Errorf("%w: cannot write directory node %s", kerrors.ErrInvalidPath, path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	m.docs[path] = stored
	return nil
}

// Delete implements Store. Deleting an absent path is a no-op.
func (m *Memory) Delete(ctx context.Context, path Path) error {
	if err := path.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, path.Leaf())
	return nil
}

// Paths returns every leaf path in sorted order, for assertions.
func (m *Memory) Paths() []Path {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]Path, 0, len(m.docs))
	for p := range m.docs {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}
