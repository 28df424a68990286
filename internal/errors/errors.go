package errors

import "errors"

// Environment errors indicate the tool cannot run at all on this machine.
var (
	// ErrDependencyMissing indicates a required external program is not on PATH.
	ErrDependencyMissing = errors.New("required external program not found")
)

// Path errors indicate a secret path does not fit the requested operation.
var (
	// ErrInvalidPath indicates the path's trailing-slash convention does not
	// match what the operation expects (for example, editing a directory).
	ErrInvalidPath = errors.New("invalid secret path for this operation")
)

// Store errors indicate failures reported by the remote secret store.
var (
	// ErrStoreUnavailable indicates the backing store could not be reached.
	ErrStoreUnavailable = errors.New("secret store is unreachable")

	// ErrNotFound indicates the path has no value or no children in the store.
	ErrNotFound = errors.New("secret not found")

	// ErrWriteRejected indicates the store refused a write.
	ErrWriteRejected = errors.New("secret store rejected the write")
)

// Local filesystem errors indicate the mirror or source tree is unusable.
var (
	// ErrLocalIO indicates a local directory or file could not be
	// created, read, or removed.
	ErrLocalIO = errors.New("local file operation failed")
)
