package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/paths"
)

// EnvPrefix prefixes every environment override (SOLVERCFG_STORE_PATH, ...).
const EnvPrefix = "SOLVERCFG"

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// UI modes.
const (
	UIModeTUI    = "tui"
	UIModePrompt = "prompt"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int          `mapstructure:"version" yaml:"version" json:"version"`
	Store   StoreConfig  `mapstructure:"store" yaml:"store" json:"store"`
	Schema  SchemaConfig `mapstructure:"schema" yaml:"schema" json:"schema"`
	Backup  BackupConfig `mapstructure:"backup" yaml:"backup" json:"backup"`
	UI      UIConfig     `mapstructure:"ui" yaml:"ui" json:"ui"`
}

// StoreConfig locates the persisted parameter store.
type StoreConfig struct {
	Path   string `mapstructure:"path" yaml:"path" json:"path"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// SchemaConfig locates the option schema. An empty path selects the
// built-in solver schema.
type SchemaConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// BackupConfig controls snapshots taken before the store is overwritten.
type BackupConfig struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention" json:"retention"`
}

// UIConfig selects the editing presenter.
type UIConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// It resets any previous Viper state.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, value := range Defaults() {
		viper.SetDefault(key, value)
	}
}

// Defaults returns the default value of every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"version":          CurrentVersion,
		"store.path":       paths.DefaultStorePath(),
		"store.format":     "auto",
		"schema.path":      "",
		"backup.enabled":   true,
		"backup.retention": 5,
		"ui.mode":          UIModeTUI,
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
// The loaded configuration is validated; the first problem is returned
// marked with errors.ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults are fine.
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Parse decodes a YAML config document over the defaults and validates it,
// without touching the global configuration.
func Parse(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
