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

func init() {
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual backup",
	Long: `Create a backup of the parameter store.

Backups are created automatically before solvercfg overwrites the store.
This command allows you to create additional backups manually.`,
	Example: `  solvercfg backup create

  See Also:
    solvercfg backup list    - List available backups
    solvercfg backup restore - Restore from a backup`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, _ []string) error {
	path, err := app.StorePath()
	if err != nil {
		return err
	}
	return runCreateWithWriter(cmd.OutOrStdout(), app.BackupManager(), path)
}

func runCreateWithWriter(w io.Writer, mgr *backup.Manager, path string) error {
	manifest, err := mgr.Backup("manual", path)
	if err != nil {
		if errors.Is(err, backup.ErrNothingToBackUp) {
			fmt.Fprintf(w, "%s\n", color.YellowString("%s does not exist; nothing to back up", path))
			return nil
		}
		return errors.Wrapf(err, "backing up %s", path)
	}

	fmt.Fprintf(w, "%s created backup %s (%d file(s))\n",
		color.GreenString("✓"), manifest.ID, len(manifest.Files))
	return nil
}
