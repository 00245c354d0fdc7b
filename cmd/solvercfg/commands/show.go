package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
)

var showOutput string

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "text",
		"output format: text, yaml, json")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective option values",
	Long: `Show every option with the value it takes after reading the store.

Options the store does not supply, or supplies in a form that does not
parse, show their default. In text output, values that differ from the
default are marked with '*'. Run 'solvercfg doctor' to see why an option
fell back.`,
	Example: `  # Show all values grouped by category
  solvercfg show

  # Machine-readable output
  solvercfg show -o json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

// categoryOutput is one category in structured output.
type categoryOutput struct {
	Category string         `json:"category" yaml:"category"`
	Options  []optionOutput `json:"options" yaml:"options"`
}

// optionOutput is one option in structured output.
type optionOutput struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Value   any    `json:"value" yaml:"value"`
	Default any    `json:"default" yaml:"default"`
	Help    string `json:"help,omitempty" yaml:"help,omitempty"`
}

func runShow(cmd *cobra.Command, _ []string) error {
	m, file, err := app.Load(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch showOutput {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(modelOutput(m)), "encoding output")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(modelOutput(m)); err != nil {
			return errors.Wrap(err, "encoding output")
		}
		return errors.Wrap(enc.Close(), "encoding output")
	case "text":
		if !file.Existed {
			fmt.Fprintf(w, "%s\n\n", color.New(color.Faint).Sprintf("(%s does not exist; showing defaults)", file.Path))
		}
		return showText(w, m)
	default:
		return errors.NewUserError(
			errors.Newf("unknown output format %q", showOutput),
			"Use one of: text, yaml, json")
	}
}

func modelOutput(m *option.Model) []categoryOutput {
	out := make([]categoryOutput, 0, len(m.Categories()))
	for _, c := range m.Categories() {
		co := categoryOutput{Category: c.Name, Options: make([]optionOutput, 0, len(c.Options()))}
		for _, o := range c.Options() {
			co.Options = append(co.Options, optionOutput{
				Name:    o.Name,
				Type:    o.DeclaredType(),
				Value:   o.Value().Any(),
				Default: o.Default.Any(),
				Help:    o.Help,
			})
		}
		out = append(out, co)
	}
	return out
}

func showText(w io.Writer, m *option.Model) error {
	header := color.New(color.FgCyan, color.Bold)
	changed := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	for i, c := range m.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header.Fprintf(w, "[%s]\n", c.Name)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, o := range c.Options() {
			mark := " "
			if isModified(o) {
				mark = changed.Sprint("*")
			}
			fmt.Fprintf(tw, "%s %s\t= %s\t%s\n", mark, o.Name, o.Value(), faint.Sprintf("(%s)", o.DeclaredType()))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}

// isModified reports whether o holds something other than its default.
func isModified(o *option.OptionSpec) bool {
	return option.Format(o.Value()) != option.Format(o.Default)
}
