package backup

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/backup"
	"github.com/thoreinstein/solvercfg/internal/cli/prompt"
	"github.com/thoreinstein/solvercfg/internal/errors"
)

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false,
		"Restore without asking for confirmation")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore from a backup",
	Long: `Restore the parameter store from a backup.

Without a backup ID the most recent backup is used. The current store is
backed up first, so a restore can itself be undone. Every file is checked
against the SHA-256 recorded in the manifest before anything is written.`,
	Example: `  # Restore from the most recent backup
  solvercfg backup restore

  # Restore from a specific backup
  solvercfg backup restore 20260123T100712 --yes

  See Also:
    solvercfg backup list - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	var confirm func(string) (bool, error)
	if !restoreYes {
		confirm = prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm
	}
	return runRestoreWithWriter(cmd.OutOrStdout(), app.BackupManager(), args, confirm)
}

func runRestoreWithWriter(w io.Writer, mgr *backup.Manager, args []string, confirm func(string) (bool, error)) error {
	// Determine backup ID
	var backupID string
	if len(args) > 0 {
		backupID = args[0]
	} else {
		manifests, err := mgr.List()
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Backups are created when solvercfg first overwrites the store")
			}
			return errors.Wrap(err, "listing backups")
		}
		backupID = manifests[0].ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", backupID)
	}

	manifest, err := mgr.Get(backupID)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run: solvercfg backup list")
		}
		return errors.Wrapf(err, "getting backup %s", backupID)
	}

	for _, f := range manifest.Files {
		fmt.Fprintf(w, "  %s\n", f.OriginalPath)
	}
	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Restore %d file(s) from backup %s?", len(manifest.Files), backupID))
		if err != nil && !errors.Is(err, prompt.ErrSelectionCancelled) {
			return errors.Wrap(err, "confirming restore")
		}
		if !ok {
			fmt.Fprintln(w, "Restore cancelled")
			return nil
		}
	}

	_, snapshot, err := mgr.RestoreWithBackup(backupID)
	if err != nil {
		return errors.Wrap(err, "restoring backup")
	}
	if snapshot != nil {
		fmt.Fprintf(w, "Previous store saved as backup %s\n", snapshot.ID)
	}

	fmt.Fprintf(w, "%s restored %d file(s) from backup %s\n",
		color.GreenString("✓"), len(manifest.Files), backupID)
	return nil
}
