// Package logger provides leveled logging for vaultmirror CLI commands.
//
// Output verbosity is controlled by three flags:
//
//   - --verbose: shows info messages
//   - --debug: shows debug details
//   - --quiet: suppresses everything below error
//
// Without flags, only warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown unless --quiet
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Errorf plus the message as an error value
//
// Commands create a logger in their PersistentPreRunE and pass it to
// internal functions; core packages never construct their own.
package logger
