package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/schema"
)

var schemaOutput string

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "text",
		"output format: text, yaml, toml")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the registered options",
	Long: `Print every option the schema registers, with its type, default and
help text, in registration order.

The yaml and toml outputs are themselves valid schema files, a starting
point for a custom schema.path.`,
	Example: `  solvercfg schema
  solvercfg schema -o yaml > my-schema.yaml`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, _ []string) error {
	m, err := app.Model()
	if err != nil {
		return errors.Wrap(err, "loading schema")
	}
	w := cmd.OutOrStdout()

	switch schemaOutput {
	case "yaml", "toml":
		data, err := schema.Encode(schema.FromModel(m), schema.Format(schemaOutput))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "writing output")
	case "text":
	default:
		return errors.NewUserError(
			errors.Newf("unknown output format %q", schemaOutput),
			"Use one of: text, yaml, toml")
	}

	header := color.New(color.FgCyan, color.Bold)
	for i, c := range m.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header.Fprintf(w, "[%s]\n", c.Name)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, o := range c.Options() {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", o.Name, o.DeclaredType(), o.Default, truncate(o.Help, 60))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}
