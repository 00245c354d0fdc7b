package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

var (
	genDocDir string
	genDocMan bool
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for every command",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "directory to write pages into (required)")
	genDocCmd.Flags().BoolVar(&genDocMan, "man", false, "write man(1) pages instead of Markdown")
	_ = genDocCmd.MarkFlagRequired("dir")
	withoutConfig(genDocCmd)
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(genDocDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", genDocDir)
	}

	var err error
	if genDocMan {
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{Title: "SOLVERCFG", Section: "1", Source: "solvercfg"}, genDocDir)
	} else {
		err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, pageFrontMatter, pageLink)
	}
	if err != nil {
		return errors.Wrap(err, "generating documentation")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documentation written to %s\n", genDocDir)
	return nil
}

// pageFrontMatter titles a page after its command path:
// solvercfg_backup_list.md becomes "solvercfg backup list".
func pageFrontMatter(filename string) string {
	title := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(filename), ".md"), "_", " ")
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n\n", title, "Reference for "+title)
}

func pageLink(name string) string {
	return "/docs/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
