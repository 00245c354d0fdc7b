package option

import (
	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Registration failures other than unknown type tags.
var (
	ErrEmptyName       = errors.New("name is required")
	ErrDuplicate       = errors.New("already registered")
	ErrDefaultMismatch = errors.New("default does not match declared type")
	ErrDottedName      = errors.New("option names cannot contain '.'")
)

// RegistrationError reports an option whose declaration cannot be used.
// It is a schema defect, not a runtime input error.
type RegistrationError struct {
	Category string
	Option   string
	Err      error
}

func (e *RegistrationError) Error() string {
	return "option " + e.Category + "." + e.Option + ": " + e.Err.Error()
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
