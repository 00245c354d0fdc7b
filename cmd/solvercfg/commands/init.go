package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/errors"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite the values of an existing store")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write every default value to the store",
	Long: `Create the parameter store with every option set to its default.

An existing store is left alone unless --force is given. With --force every
option is reset to its default; entries the schema does not declare are
kept, and the previous file is backed up first.`,
	Example: `  solvercfg init
  solvercfg init --force --store ./solver.toml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Not hydrated: every value is its default.
	m, err := app.Model()
	if err != nil {
		return errors.Wrap(err, "loading schema")
	}
	file, err := app.OpenStore()
	if err != nil {
		return errors.Wrap(err, "opening store")
	}
	if file.Existed && !initForce {
		return errors.NewUserError(
			errors.Newf("store %s already exists", file.Path),
			"Use --force to reset every option to its default")
	}

	if _, err := app.Save(ctx, m, file, "init"); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d option(s) to %s\n", m.Len(), file.Path)
	return nil
}
