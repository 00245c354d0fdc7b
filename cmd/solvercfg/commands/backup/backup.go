// Package backup provides CLI commands for managing store backups.
package backup

import "github.com/spf13/cobra"

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage store backups",
	Long: `Manage backups of the parameter store.

Before solvercfg overwrites the store, it copies the previous file into a
backup under $XDG_DATA_HOME/solvercfg/backups/, verified by SHA-256 on
restore. The backup.retention setting bounds how many are kept.`,
	Example: `  # List all backups
  solvercfg backup list

  # Restore the most recent backup
  solvercfg backup restore

  # Restore a specific backup without asking
  solvercfg backup restore 20260123T100712 --yes

  See Also:
    solvercfg backup list    - List available backups
    solvercfg backup restore - Restore from a backup
    solvercfg backup create  - Manually create a backup
    solvercfg backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
