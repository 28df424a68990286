// Package ui provides semantic text formatting for CLI output.
//
// Formatters render appropriately for the terminal: colorized when the
// terminal supports it, falling back to plain text decorations when
// NO_COLOR is set or colors are unavailable (TERM=dumb, not a TTY).
//
// Use the formatter matching the content type:
//
//	ui.Code.Sprint("vaultmirror sync secret/")  // Runnable commands
//	ui.Path.Sprint("secret/app/db")             // Secret or file paths
//	ui.Success.Sprint("✓")                       // Success indicators
//	ui.Error.Sprint("✗")                         // Error indicators
//	ui.Warning.Sprint("[dry-run]")               // Warnings and markers
//	ui.Info.Sprint("→")                          // Informational hints
//	ui.Muted.Sprint("unchanged")                 // De-emphasized text
package ui
