package store

import (
	"context"
	"encoding/json"
)

// Store is the only gateway to the remote secret hierarchy. All
// traversal and reconciliation logic is written against this interface,
// never against a concrete backend.
type Store interface {
	// List returns the direct child names of a directory path, each name
	// ending in "/" iff it denotes a directory node. Returns
	// errors.ErrNotFound when the path has no children and
	// errors.ErrStoreUnavailable when the backend cannot be reached.
	List(ctx context.Context, path Path) ([]string, error)

	// Read returns the data payload of a leaf. Store metadata from the
	// read envelope is never included. Returns errors.ErrNotFound when
	// the leaf does not exist.
	Read(ctx context.Context, path Path) (json.RawMessage, error)

	// Write fully overwrites the value at a leaf path. Returns
	// errors.ErrWriteRejected when the backend refuses the write.
	Write(ctx context.Context, path Path, doc json.RawMessage) error

	// Delete removes a leaf. Deleting an absent path is not an error.
	Delete(ctx context.Context, path Path) error
}
