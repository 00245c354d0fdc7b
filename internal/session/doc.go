// Package session implements the detached editing working set used while
// an operator changes option values.
//
// [Open] snapshots every option of a model into a typed [Cell]. Cells are
// plain mutable slots: changing one never touches the model. [Session.Commit]
// copies all cells back in one step, or none of them when any cell holds a
// value of the wrong kind. [Session.Cancel] drops the working set.
//
// The lifecycle is a small state machine:
//
//	Editing --Commit--> Committing --ok--> Done
//	                              \--fail--> Error
//	Editing --Cancel--> Cancelled --> Done
//
// A session is single use. Only one session should be open against a
// model at a time; callers enforce that.
package session
