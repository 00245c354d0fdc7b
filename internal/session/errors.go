package session

import (
	"github.com/thoreinstein/solvercfg/internal/option"
)

// CommitConsistencyError reports a cell whose value kind does not match its
// option's type. When Commit returns it, nothing was applied.
type CommitConsistencyError struct {
	Category string
	Option   string
	Want     option.TypeTag
	Got      option.TypeTag
	Err      error
}

func (e *CommitConsistencyError) Error() string {
	return "commit " + e.Category + "." + e.Option + ": cell holds " + e.Got.String() +
		", option type is " + e.Want.String()
}

func (e *CommitConsistencyError) Unwrap() error {
	return e.Err
}
