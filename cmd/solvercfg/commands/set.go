package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/session"
)

func init() {
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set [<category.option> [<value>]]",
	Short: "Change the value of one option",
	Long: `Change one option and write the result to the store.

The value is parsed as the option's type: base-10 integers, decimal or
exponent floats, and booleans as true/false, yes/no, on/off or 1/0.
Without arguments an interactive finder chooses the option, and without
a value you are asked for one.`,
	Example: `  # Set a float
  solvercfg set DEFAULTSOLVER.H1parameter 12.5

  # Bare names work when unique
  solvercfg set UseMeteo yes

  # Pick the option interactively
  solvercfg set`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSet,
}

// findOption lets the user choose among refs. It returns ok=false when the
// user aborts.
var findOption = func(m *option.Model, refs []string) (ref string, ok bool, err error) {
	idx, err := fuzzyfinder.Find(
		refs,
		func(i int) string { return refs[i] },
		fuzzyfinder.WithPromptString("option> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			_, spec, err := m.Resolve(refs[i])
			if err != nil {
				return ""
			}
			return fmt.Sprintf("%s\n\nType:    %s\nValue:   %s\nDefault: %s\n\n%s",
				refs[i], spec.DeclaredType(), spec.Value(), spec.Default, spec.Help)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "interactive selection failed")
	}
	return refs[idx], true, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	w := cmd.OutOrStdout()

	m, file, err := app.Load(ctx)
	if err != nil {
		return err
	}

	sel := selector(cmd)
	if len(args) < 2 && sel == nil {
		return errors.NewUserError(
			errors.New("set needs an option and a value when not run in a terminal"),
			"Usage: solvercfg set <category.option> <value>")
	}

	var ref string
	if len(args) == 0 {
		picked, ok, err := findOption(m, m.Refs())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled")
			return nil
		}
		ref = picked
	} else {
		category, spec, err := resolveRef(m, args[0], sel)
		if err != nil {
			return err
		}
		ref = category + "." + spec.Name
	}

	var text string
	if len(args) == 2 {
		text = args[1]
	} else {
		_, spec, err := m.Resolve(ref)
		if err != nil {
			return errors.NewUserError(err, "Run: solvercfg schema")
		}
		text, err = sel.Ask(fmt.Sprintf("%s (%s)", ref, spec.DeclaredType()), spec.Value().String())
		if err != nil {
			return errors.Wrap(err, "reading value")
		}
	}

	sess, err := session.Open(m, session.WithLogger(logger))
	if err != nil {
		return err
	}
	cell, err := sess.Resolve(ref)
	if err != nil {
		return err
	}
	if err := cell.SetText(text); err != nil {
		_ = sess.Cancel()
		return errors.NewUserError(err,
			fmt.Sprintf("%s expects a %s value", ref, cell.DeclaredType()))
	}
	if err := sess.Commit(); err != nil {
		return err
	}

	changed, err := app.Save(ctx, m, file, "set "+ref)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s = %s", ref, cell.Text())
	if !changed {
		line += " (store unchanged)"
	}
	fmt.Fprintln(w, line)
	return nil
}
