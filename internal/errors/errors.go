package errors

import (
	"fmt"
)

// Process exit codes. ExitUser covers anything the user can correct (a bad
// flag, an unknown option, an invalid config file). ExitSystem covers I/O
// and everything unclassified.
const (
	ExitSuccess = 0
	ExitUser    = 1
	ExitSystem  = 2
)

var (
	ErrNotFound      = New("resource not found")
	ErrInvalidConfig = New("invalid configuration")
)

// Sentinels of the option model and editing sessions.
var (
	// ErrUnknownType is returned for a type tag other than int, float or bool.
	ErrUnknownType = New("unknown type tag")

	// ErrUnknownOption is returned for a category.option reference that the
	// registry does not hold.
	ErrUnknownOption = New("unknown option")

	// ErrCommitConsistency means a cell holds a value of the wrong kind for
	// its option. It indicates a programming error, not bad input.
	ErrCommitConsistency = New("cell value does not match option type")

	// ErrSessionClosed is returned by session operations after Commit or
	// Cancel.
	ErrSessionClosed = New("editing session is closed")
)

// ExitError carries the exit code for err, plus an optional suggestion that
// the CLI prints under the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with code. err may be nil when only the exit
// status matters.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError wraps err with ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewConfigError wraps a config loading failure and points at doctor.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: solvercfg doctor")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code carried by err.
// Errors without an ExitError in their chain map to ExitSystem.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
