package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/doctor"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/hydrate"
	"github.com/thoreinstein/solvercfg/internal/store"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable problems, then check again")
	withoutConfig(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on the solvercfg configuration, the option
schema and the parameter store.

Options the store cannot supply load as their defaults without any error.
doctor lists each of them with the reason: a missing section, a missing
option, or text that does not parse as the option's type. --fix writes
the effective values to the store so every option is explicit.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}

	return nil
}

// doctorOutput is the JSON document for doctor --json.
type doctorOutput struct {
	*doctor.DoctorReport
	Fixes []doctor.FixResult `json:"fixes,omitempty"`
}

func newDoctorRunner() (*doctor.Runner, *doctor.FallbackCheck) {
	cfg := app.Config()

	storePath, _ := app.StorePath()
	format, err := app.StoreFormat()
	if err != nil {
		format = store.Format(cfg.Store.Format)
	}
	schemaPath, _ := app.SchemaPath()

	schemaCheck := doctor.NewSchemaCheck(schemaPath)
	storeCheck := doctor.NewStoreCheck(storePath, format)
	fallback := doctor.NewFallbackCheck(schemaCheck, storeCheck, app.BeforeSave("doctor --fix"))

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(cfg, app.ConfigFile(), app.LoadErr()))
	runner.AddCheck(schemaCheck)
	runner.AddCheck(storeCheck)
	runner.AddCheck(fallback)
	return runner, fallback
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	runner, fallback := newDoctorRunner()

	var (
		report *doctor.DoctorReport
		fixes  []doctor.FixResult
	)
	if doctorFix {
		fixes, report = runner.Repair()
	} else {
		report = runner.Run()
	}

	if err := outputDoctorReport(w, report, fallback.Findings(), fixes); err != nil {
		return err
	}

	switch report.Worst() {
	case doctor.SeverityError:
		return errDoctorErrors
	case doctor.SeverityWarning:
		return errDoctorWarnings
	default:
		return nil
	}
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport, findings []hydrate.Finding, fixes []doctor.FixResult) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doctorOutput{DoctorReport: report, Fixes: fixes}); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	outputFixes(w, fixes)
	outputDoctorText(w, report, findings)
	return nil
}

func outputFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
		} else {
			fmt.Fprintf(w, "%s could not fix %s: %s\n", color.RedString("✗"), f.Path, f.Description)
		}
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport, findings []hydrate.Finding) {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.Name == "fallback" {
			for _, f := range findings {
				if !showAll && f.Reason != hydrate.ReasonMalformed {
					continue
				}
				line := fmt.Sprintf("  %s (%s): %s", f.Ref(), f.Type, f.Reason)
				if f.Reason == hydrate.ReasonMalformed {
					line += fmt.Sprintf(" %q", f.Stored)
				}
				fmt.Fprintf(w, "%s, default %s\n", line, f.Default)
			}
		}

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	// Print summary
	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings sets exit code 1 without printing anything.
var errDoctorWarnings = errors.NewExitError(nil, errors.ExitUser)

// errDoctorErrors sets exit code 2 without printing anything.
var errDoctorErrors = errors.NewExitError(nil, errors.ExitSystem)
