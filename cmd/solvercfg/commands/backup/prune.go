package backup

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/backup"
	"github.com/thoreinstein/solvercfg/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"Number of backups to retain")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove old backups beyond the retention count.

By default, keeps the 5 most recent backups and removes older ones.
Use the --keep flag to specify a different retention count.`,
	Example: `  # Keep only the 3 most recent backups
  solvercfg backup prune --keep 3

  # Remove all backups (keep 0)
  solvercfg backup prune --keep 0

  See Also:
    solvercfg backup list   - List available backups
    solvercfg backup create - Create a new backup`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	return runPruneWithWriter(cmd.OutOrStdout(), app.BackupManager(), pruneKeep)
}

func runPruneWithWriter(w io.Writer, mgr *backup.Manager, keep int) error {
	if keep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	manifests, err := mgr.List()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			fmt.Fprintln(w, "No backups to prune")
			return nil
		}
		return errors.Wrap(err, "listing backups")
	}

	toRemove := len(manifests) - keep
	if toRemove <= 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	if err := mgr.Prune(keep); err != nil {
		return errors.Wrap(err, "pruning backups")
	}

	fmt.Fprintf(w, "%s removed %d old backup(s)\n", color.GreenString("✓"), toRemove)
	return nil
}
