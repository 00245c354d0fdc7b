package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/backup"
	"github.com/thoreinstein/solvercfg/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all available store backups, most recent first.`,
	Example: `  # List all backups
  solvercfg backup list

  # Output as JSON
  solvercfg backup list --json

  See Also:
    solvercfg backup restore - Restore from a backup
    solvercfg backup create  - Create a new backup`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Reason      string    `json:"reason,omitempty"`
	Files       []string  `json:"files"`
	ToolVersion string    `json:"tool_version"`
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd.OutOrStdout(), app.BackupManager())
}

func runListWithWriter(w io.Writer, mgr *backup.Manager) error {
	manifests, err := mgr.List()
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrap(err, "listing backups")
	}

	if listJSON {
		return outputListJSON(w, manifests)
	}
	return outputListTabular(w, manifests)
}

func outputListJSON(w io.Writer, manifests []backup.BackupManifest) error {
	output := make([]infoOutput, len(manifests))
	for i, m := range manifests {
		files := make([]string, len(m.Files))
		for j, f := range m.Files {
			files[j] = f.OriginalPath
		}
		output[i] = infoOutput{
			ID:          m.ID,
			CreatedAt:   m.CreatedAt,
			Reason:      m.Reason,
			Files:       files,
			ToolVersion: m.ToolVersion,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding output")
}

func outputListTabular(w io.Writer, manifests []backup.BackupManifest) error {
	if len(manifests) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before solvercfg overwrites the store.")
		fmt.Fprintln(w, "You can also create a backup manually with: solvercfg backup create")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		bold("ID"), bold("CREATED"), bold("REASON"), bold("FILES"), bold("VERSION"))

	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			green(m.ID),
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			m.Reason,
			len(m.Files),
			m.ToolVersion)
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
