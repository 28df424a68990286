package store

import (
	"fmt"
	"strings"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
)

// Path identifies a node in the remote secret hierarchy. Segments are
// separated by "/"; a trailing "/" marks a directory node, anything
// else is a leaf holding one JSON document. Paths are never empty.
type Path string

// IsDir reports whether the path denotes a directory node.
func (p Path) IsDir() bool {
	return strings.HasSuffix(string(p), "/")
}

// Validate rejects empty paths and paths that collapse to nothing
// (a bare "/" has no addressable node).
func (p Path) Validate() error {
	if strings.Trim(string(p), "/") == "" {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidPath, string(p))
	}
	return nil
}

// Join appends a child name to a directory path, inserting exactly one
// separator regardless of whether the parent already carries its
// trailing slash. The child's own trailing slash is preserved, so
// joining a directory listing entry yields a directory path.
func (p Path) Join(child string) Path {
	parent := strings.TrimSuffix(string(p), "/")
	child = strings.TrimPrefix(child, "/")
	if parent == "" {
		return Path(child)
	}
	return Path(parent + "/" + child)
}

// Dir returns the directory form of the path, with trailing slash.
func (p Path) Dir() Path {
	if p.IsDir() {
		return p
	}
	return p + "/"
}

// Leaf returns the leaf form of the path, without trailing slash.
func (p Path) Leaf() Path {
	return Path(strings.TrimSuffix(string(p), "/"))
}

// Base returns the final segment, keeping a directory's trailing slash,
// so listing output can be joined back with Join.
func (p Path) Base() string {
	trimmed := strings.TrimSuffix(string(p), "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if p.IsDir() {
		return trimmed + "/"
	}
	return trimmed
}

func (p Path) String() string {
	return string(p)
}
