package hydrate

import (
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/store"
)

// Reason explains why an option would not be read from the store.
type Reason string

// Fallback reasons.
const (
	ReasonMissingSection Reason = "missing-section"
	ReasonMissingOption  Reason = "missing-option"
	ReasonMalformed      Reason = "malformed"
)

// Finding describes one option that Hydrate would set to its default.
type Finding struct {
	Category string       `json:"category"`
	Option   string       `json:"option"`
	Type     string       `json:"type"`
	Reason   Reason       `json:"reason"`
	Stored   string       `json:"stored,omitempty"`
	Default  option.Value `json:"-"`
}

// Ref returns the "category.option" reference of the finding.
func (f Finding) Ref() string {
	return f.Category + "." + f.Option
}

// Diagnose reports, in registration order, every option of m that s cannot
// supply. It reads only; neither m nor s is modified.
func Diagnose(m *option.Model, s store.Store) []Finding {
	var findings []Finding
	_ = m.Walk(func(category string, spec *option.OptionSpec) error {
		f := Finding{
			Category: category,
			Option:   spec.Name,
			Type:     spec.DeclaredType(),
			Default:  spec.Default,
		}
		text, err := s.Get(category, spec.Name)
		switch {
		case errors.Is(err, store.ErrNoSection):
			f.Reason = ReasonMissingSection
		case err != nil:
			f.Reason = ReasonMissingOption
		default:
			if _, cerr := option.Coerce(spec.Type, text); cerr == nil {
				return nil
			}
			f.Reason = ReasonMalformed
			f.Stored = text
		}
		findings = append(findings, f)
		return nil
	})
	return findings
}
