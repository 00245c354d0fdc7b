// Package doctor provides diagnostic checks for solvercfg: its own
// configuration, the option schema, the parameter store, and the options
// that would silently fall back to their defaults.
package doctor

import (
	"slices"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Severity ranks a check result. Higher values are worse, so the worst
// result of a run is the maximum.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = []string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name so JSON reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	i := slices.Index(severityNames, string(text))
	if i < 0 {
		return errors.Newf("unknown severity %q", text)
	}
	*s = Severity(i)
	return nil
}

// CheckResult is the outcome of one check. Details carries check-specific
// context such as the path that was inspected. FixHint tells the user what
// to run when Fixable is false or --fix was not given.
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	Fixable  bool           `json:"fixable,omitempty"`
	FixHint  string         `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}
