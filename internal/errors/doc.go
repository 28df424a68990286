// Package errors defines sentinel errors shared across vaultmirror.
//
// Errors are grouped by concern: environment (missing external tools),
// path validation, remote store failures, and local filesystem failures.
// Callers wrap these with fmt.Errorf("%w: ...") to add context and
// discriminate with errors.Is, so user-facing layers never match on
// error strings.
//
// The groups map directly onto how failures are handled: a missing
// dependency aborts before any store access, an invalid path skips the
// single operation, store and local I/O failures abort the current
// traversal because a partially materialized tree cannot be diffed
// safely.
package errors
