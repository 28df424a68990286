// Package utils provides shared helpers for the vaultmirror application.
//
// # Command Execution
//
// CommandRunner abstracts every external program invocation (the vault
// binary, the interactive editor) behind one interface:
//   - ExecRunner: the os/exec-backed implementation used in production
//   - MockCommandRunner: a recording fake for tests, configured with
//     expected command lines and canned outputs
//
// LookPath on the runner backs the dependency presence check that runs
// before any command logic.
package utils
