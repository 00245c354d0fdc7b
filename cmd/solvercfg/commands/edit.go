package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/cli/prompt"
	"github.com/thoreinstein/solvercfg/internal/config"
	"github.com/thoreinstein/solvercfg/internal/editor"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/hydrate"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/presenter"
	"github.com/thoreinstein/solvercfg/internal/presenter/tui"
	"github.com/thoreinstein/solvercfg/internal/session"
	"github.com/thoreinstein/solvercfg/internal/store"
)

var (
	editUI  string
	editRaw bool
)

func init() {
	editCmd.Flags().StringVar(&editUI, "ui", "",
		"editing surface: tui, prompt (default: ui.mode)")
	editCmd.Flags().BoolVar(&editRaw, "raw", false,
		"open the store file in $EDITOR instead")
	editCmd.MarkFlagsMutuallyExclusive("ui", "raw")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit all options in a tabbed form",
	Long: `Edit every option in a form with one tab per category.

Changes are made to a copy of the values. Confirming writes all of them to
the store at once; cancelling discards all of them.

The terminal form (--ui tui) cycles tabs with Ctrl-N/Ctrl-P or F2/F3,
saves with Ctrl-S and cancels with Esc. The prompt form (--ui prompt)
reads "name=value" lines, then ":ok" or ":cancel". When standard input is
not a terminal the prompt form is used.

With --raw the store file itself is opened in $EDITOR. The edit is only
saved if it still parses.`,
	Example: `  solvercfg edit
  solvercfg edit --ui prompt
  solvercfg edit --raw`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

// newPresenter picks the editing surface for mode.
var newPresenter = func(cmd *cobra.Command, mode string) (presenter.Presenter, error) {
	switch mode {
	case config.UIModeTUI:
		if interactive(cmd) {
			return tui.New(), nil
		}
		logging.FromContext(cmd.Context()).Info("standard input is not a terminal; using the prompt form")
		return prompt.NewFormWithIO(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	case config.UIModePrompt:
		return prompt.NewFormWithIO(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	default:
		return nil, errors.NewUserError(
			errors.Newf("unknown editing surface %q", mode),
			"Use one of: tui, prompt")
	}
}

func runEdit(cmd *cobra.Command, _ []string) error {
	if editRaw {
		return runRawEdit(cmd)
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	w := cmd.OutOrStdout()

	m, file, err := app.Load(ctx)
	if err != nil {
		return err
	}

	mode := editUI
	if mode == "" {
		mode = app.Config().UI.Mode
	}
	p, err := newPresenter(cmd, mode)
	if err != nil {
		return err
	}

	before := m.Snapshot()
	outcome, err := presenter.Run(ctx, m, p, session.WithLogger(logger))
	switch outcome {
	case presenter.OutcomeCancelled:
		fmt.Fprintln(w, "Edit cancelled; nothing saved")
		return nil
	case presenter.OutcomeFailed:
		return err
	}

	n := countChanges(before, m)
	if _, err := app.Save(ctx, m, file, "edit"); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %d change(s) to %s\n", n, file.Path)
	return nil
}

// countChanges counts options whose value differs from before.
func countChanges(before map[string]map[string]option.Value, m *option.Model) int {
	n := 0
	_ = m.Walk(func(category string, spec *option.OptionSpec) error {
		if option.Format(before[category][spec.Name]) != option.Format(spec.Value()) {
			n++
		}
		return nil
	})
	return n
}

func runRawEdit(cmd *cobra.Command) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	m, file, err := app.Load(ctx)
	if err != nil {
		return err
	}
	// Start from a complete file so every option is visible.
	if !file.Existed {
		if _, err := app.Save(ctx, m, file, "edit --raw"); err != nil {
			return err
		}
	}
	if err := app.BeforeSave("edit --raw")(file.Path); err != nil {
		return err
	}

	ed := &editor.Editor{Stdin: cmd.InOrStdin(), Stdout: w, Stderr: cmd.ErrOrStderr()}
	changed, err := ed.EditValidated(ctx, file.Path, store.FilePerm, func(data []byte) error {
		_, err := store.Decode(file.Format, data)
		return err
	})
	if err != nil {
		if errors.Is(err, editor.ErrInvalidEdit) {
			return errors.NewUserError(err, "Fix the saved copy and move it over the store, or run: solvercfg edit --raw")
		}
		return err
	}
	if !changed {
		fmt.Fprintln(w, "No changes")
		return nil
	}

	fmt.Fprintf(w, "Saved %s\n", file.Path)
	edited, err := app.OpenStore()
	if err != nil {
		return err
	}
	if findings := hydrate.Diagnose(m, edited); len(findings) > 0 {
		fmt.Fprintf(w, "%d option(s) will use their default. Run: solvercfg doctor\n", len(findings))
	}
	return nil
}
