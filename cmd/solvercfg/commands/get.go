package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <category.option>",
	Short: "Print the effective value of one option",
	Long: `Print the value one option takes after reading the store, in the
canonical text written to the store.

The option may be given without its category when the name is unique.`,
	Example: `  solvercfg get DEFAULTSOLVER.H1parameter
  solvercfg get NbRaysPerSource`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	m, _, err := app.Load(cmd.Context())
	if err != nil {
		return err
	}
	_, spec, err := resolveRef(m, args[0], selector(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), spec.Value())
	return nil
}
