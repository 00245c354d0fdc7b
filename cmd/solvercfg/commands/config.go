package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/internal/config"
	"github.com/thoreinstein/solvercfg/internal/editor"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/paths"
	"github.com/thoreinstein/solvercfg/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	withoutConfig(configPathCmd)
	withoutConfig(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage solvercfg configuration",
	Long: `Manage the configuration of solvercfg itself: where the parameter
store lives, its format, the schema, backups and the editing surface.

The file is config.yaml, searched in the current directory and then in
$XDG_CONFIG_HOME/solvercfg. Every key can also be set from the
environment, e.g. SOLVERCFG_STORE_PATH.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  solvercfg config

  # Use a TOML store
  solvercfg config set store.path ~/solver/params.toml

See Also: solvercfg doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key, using dot notation.`,
	Example: `  solvercfg config get store.path

See Also: solvercfg config set, solvercfg config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the configuration file.

The result is validated before it is written.`,
	Example: `  solvercfg config set ui.mode prompt
  solvercfg config set backup.retention 10

See Also: solvercfg config get, solvercfg config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all effective configuration values in YAML format.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

The edit is only saved if it still parses and validates.`,
	Example: `  EDITOR=nano solvercfg config edit`,
	Args:    cobra.NoArgs,
	RunE:    runConfigEdit,
}

// configFilePath returns the file config set and edit write to.
func configFilePath() string {
	if app.Flags.Config != "" {
		return app.Flags.Config
	}
	if f := app.ConfigFile(); f != "" {
		return f
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

func configKeys() []string {
	keys := make([]string, 0, len(config.Defaults()))
	for k := range config.Defaults() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(configKeys(), key) {
		return errors.NewUserError(errors.Newf("unknown key %q", key), "Run: solvercfg config list")
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !slices.Contains(configKeys(), key) {
		return errors.NewUserError(errors.Newf("unknown key %q", key), "Run: solvercfg config list")
	}

	viper.Set(key, value)
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.NewUserError(errors.Wrapf(err, "setting %s", key), "")
	}
	if errs := config.Validate(&cfg); len(errs) > 0 {
		return errors.NewUserError(errs[0], "")
	}

	path := configFilePath()
	if err := writeConfig(path, &cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	return writeConfigYAML(cmd.OutOrStdout(), app.Config())
}

func writeConfigYAML(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}

// writeConfig writes cfg as YAML to path.
func writeConfig(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()

	// Start from the effective configuration when there is no file yet.
	if _, err := fileutil.ReadFileWithLimit(path); err != nil {
		if err := writeConfig(path, app.Config()); err != nil {
			return err
		}
	}

	ed := &editor.Editor{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	changed, err := ed.EditValidated(cmd.Context(), path, 0o644, func(data []byte) error {
		_, err := config.Parse(data)
		return err
	})
	if err != nil {
		if errors.Is(err, editor.ErrInvalidEdit) {
			return errors.NewUserError(err, "Fix the saved copy and move it over the config file")
		}
		return err
	}
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes")
	}
	return nil
}
