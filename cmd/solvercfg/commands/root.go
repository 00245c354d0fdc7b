// Package commands implements the CLI commands for solvercfg.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/solvercfg/cmd"
	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/app"
	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands/backup"
	"github.com/thoreinstein/solvercfg/internal/config"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&app.Flags.Config, "config", "",
		"config file (default: search . and $XDG_CONFIG_HOME/solvercfg)")
	rootCmd.PersistentFlags().StringVar(&app.Flags.Store, "store", "",
		"parameter store file (overrides store.path)")
	rootCmd.PersistentFlags().StringVar(&app.Flags.Format, "format", "",
		"store format: auto, ini, toml, yaml (overrides store.format)")
	rootCmd.PersistentFlags().StringVar(&app.Flags.Schema, "schema", "",
		"option schema file (overrides schema.path)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("solvercfg version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(app.Flags.Config)
	app.SetConfig(cfg, config.FileUsed(), err)
}

var rootCmd = &cobra.Command{
	Use:   "solvercfg",
	Short: "Edit acoustic solver parameters",
	Long: `solvercfg manages the typed parameters of the acoustic solver.

Parameters are declared by a schema (categories of named int, float and
bool options, each with a default and help text) and stored in an INI,
TOML or YAML file. Options the store does not supply, or supplies in a
form that does not parse, take their default.

Edit everything at once in a tabbed terminal form with 'solvercfg edit',
or script single values with 'solvercfg get' and 'solvercfg set'.`,
	Example: `  # Write every default to the store
  solvercfg init

  # Show the effective values
  solvercfg show

  # Change one value
  solvercfg set DEFAULTSOLVER.H1parameter 12.5

  # Edit all values in a form
  solvercfg edit

  See Also: solvercfg doctor, solvercfg schema`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger from the verbosity flags and
// stores it on the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	cfg := logging.Config{
		Level:  logging.LevelFor(quiet, verbosity, os.Getenv(config.EnvPrefix+"_DEBUG")),
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// annotationNoConfig marks commands that run without a valid configuration.
const annotationNoConfig = "solvercfg/no-config"

// withoutConfig lets c run when the configuration failed to load.
func withoutConfig(c *cobra.Command) {
	if c.Annotations == nil {
		c.Annotations = map[string]string{}
	}
	c.Annotations[annotationNoConfig] = "true"
}

// checkConfig fails commands that need the configuration when it did not
// load. doctor reports the problem and config edit repairs it.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Annotations[annotationNoConfig] != "" {
		return nil
	}
	if err := app.LoadErr(); err != nil {
		return errors.NewConfigError(err)
	}
	if f := app.ConfigFile(); f != "" {
		logging.FromContext(cmd.Context()).Debug("config loaded", "file", f)
	}
	return nil
}

// PrintError writes err and any suggestion it carries to w.
// Exit errors without a cause only set the exit code.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
	if exitErr != nil && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}

// Execute runs the root command. The error is returned unwrapped so that
// PrintError shows the command's own message.
func Execute() error {
	return rootCmd.Execute()
}
