// Package store abstracts the remote secret hierarchy behind the Store
// interface.
//
// A Path is a slash-separated address; a trailing "/" marks a directory
// node, anything else a leaf holding one JSON document. The package
// provides three implementations:
//
//   - VaultCLI: drives the vault binary through utils.CommandRunner,
//     returning only the data payload of each read envelope
//   - Memory: an in-memory store for tests and offline use
//   - DryRun: a decorator that reports mutations instead of performing
//     them, leaving reads untouched
//
// Backend failures surface as the sentinel kinds in internal/errors:
// ErrStoreUnavailable, ErrNotFound, ErrWriteRejected. No other package
// reaches the backing store directly.
package store
