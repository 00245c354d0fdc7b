package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/internal/cli/prompt"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
)

// interactive reports whether cmd reads from a terminal.
func interactive(cmd *cobra.Command) bool {
	return logging.IsTerminal(cmd.InOrStdin())
}

// selector returns a prompt on cmd's streams when it is interactive.
func selector(cmd *cobra.Command) *prompt.Selector {
	if !interactive(cmd) {
		return nil
	}
	return prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// resolveRef finds the option named by ref, which is either
// "category.option" or a bare option name. A bare name found in several
// categories is disambiguated with sel, or rejected when sel is nil.
func resolveRef(m *option.Model, ref string, sel *prompt.Selector) (string, *option.OptionSpec, error) {
	if strings.Contains(ref, ".") {
		category, spec, err := m.Resolve(ref)
		if err != nil {
			return "", nil, errors.NewUserError(err, "Run: solvercfg schema")
		}
		return category, spec, nil
	}

	var matches []string
	for _, c := range m.Categories() {
		if c.Option(ref) != nil {
			matches = append(matches, c.Name+"."+ref)
		}
	}

	switch {
	case len(matches) == 0:
		return "", nil, errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownOption, "%q", ref), "Run: solvercfg schema")
	case len(matches) > 1 && sel == nil:
		return "", nil, errors.NewUserError(
			errors.Newf("%q is ambiguous: %s", ref, strings.Join(matches, ", ")),
			"Qualify it as category.option")
	}

	idx := 0
	if len(matches) > 1 {
		var err error
		if idx, err = sel.Select(ref, matches); err != nil {
			return "", nil, errors.Wrap(err, "choosing option")
		}
	}
	category, spec, err := m.Resolve(matches[idx])
	if err != nil {
		return "", nil, err
	}
	return category, spec, nil
}
