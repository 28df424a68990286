// Package workflows provides high-level orchestration for vaultmirror
// commands.
//
// Workflows coordinate the store client and local trees to implement
// complete user-facing features, independent of CLI concerns like flag
// parsing, spinners, and output formatting. The cmd/ package stays a
// thin layer: parse flags, call the workflow, format the result.
//
// # Available Workflows
//
//   - CheckDependencies: verifies required external programs resolve
//     before any store interaction
//   - Dump: materializes a remote subtree as local JSON files
//   - Import: writes local JSON files back to the store
//   - Edit: opens a leaf's local representation in the editor
//   - PlanSync / ApplySync: the reconciliation engine, split so the
//     CLI can confirm or report a plan before applying it
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors wrapped with
// context, so the CLI layer discriminates with errors.Is rather than
// string matching. Traversal is strictly sequential and depth-first;
// a store or local I/O failure aborts the current walk because a
// partially materialized tree cannot be diffed safely.
//
// # Context Usage
//
// Every workflow takes a context.Context first. Each store call is one
// blocking round trip; cancellation takes effect between calls, and an
// interrupted run is recovered by re-running, not by rollback.
package workflows
