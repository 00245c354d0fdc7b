// Package errors provides error handling conventions for the solvercfg CLI.
//
// This package re-exports the constructors of [github.com/cockroachdb/errors]
// so callers get stack traces and hints through a single import, defines
// sentinel errors for the editing core, and an ExitError type for CLI exit
// code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrCommitConsistency) {
//	    // the edit was rejected and nothing was applied
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. Use [ExitCode] to map any error to a process exit status.
package errors
