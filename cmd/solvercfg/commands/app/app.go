// Package app holds the state shared between the root command and its noun
// subpackages: persistent flag values, the loaded tool configuration and the
// load/save cycle of the parameter store.
// This package exists to avoid import cycles between the root command
// and noun subpackages such as backup.
package app

import (
	"context"

	"github.com/thoreinstein/solvercfg/cmd"
	"github.com/thoreinstein/solvercfg/internal/backup"
	"github.com/thoreinstein/solvercfg/internal/config"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/hydrate"
	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/paths"
	"github.com/thoreinstein/solvercfg/internal/schema"
	"github.com/thoreinstein/solvercfg/internal/store"
)

// Flags holds the values of the persistent flags. Empty strings defer to
// the configuration.
var Flags struct {
	Config string
	Store  string
	Format string
	Schema string
}

var (
	cfg     *config.Config
	cfgFile string
	loadErr error
)

// SetConfig records the outcome of config.Load.
func SetConfig(c *config.Config, file string, err error) {
	cfg, cfgFile, loadErr = c, file, err
}

// Config returns the loaded configuration, or the defaults when loading
// failed or has not happened.
func Config() *config.Config {
	if cfg != nil {
		return cfg
	}
	return defaultConfig()
}

// ConfigFile returns the configuration file that was read, or "".
func ConfigFile() string { return cfgFile }

// LoadErr returns the error config.Load reported, if any.
func LoadErr() error { return loadErr }

// Reset forgets the loaded configuration and flag values.
// This is primarily useful for testing.
func Reset() {
	cfg, cfgFile, loadErr = nil, "", nil
	Flags.Config, Flags.Store, Flags.Format, Flags.Schema = "", "", "", ""
}

func defaultConfig() *config.Config {
	return &config.Config{
		Version: config.CurrentVersion,
		Store:   config.StoreConfig{Path: paths.DefaultStorePath(), Format: string(store.FormatAuto)},
		Backup:  config.BackupConfig{Enabled: true, Retention: backup.DefaultRetentionCount},
		UI:      config.UIConfig{Mode: config.UIModeTUI},
	}
}

// StorePath returns the expanded path of the parameter store.
func StorePath() (string, error) {
	p := Flags.Store
	if p == "" {
		p = Config().Store.Path
	}
	if p == "" {
		p = paths.DefaultStorePath()
	}
	return paths.Expand(p)
}

// StoreFormat returns the configured store format.
func StoreFormat() (store.Format, error) {
	f := Flags.Format
	if f == "" {
		f = Config().Store.Format
	}
	return store.ParseFormat(f)
}

// SchemaPath returns the expanded schema path, or "" for the built-in schema.
func SchemaPath() (string, error) {
	p := Flags.Schema
	if p == "" {
		p = Config().Schema.Path
	}
	if p == "" {
		return "", nil
	}
	return paths.Expand(p)
}

// Model registers the options of the configured schema. Values are at
// their defaults.
func Model() (*option.Model, error) {
	p, err := SchemaPath()
	if err != nil {
		return nil, err
	}
	if p == "" {
		return schema.Default()
	}
	return schema.Load(p)
}

// OpenStore opens the configured store. A missing file yields an empty one.
func OpenStore() (*store.File, error) {
	p, err := StorePath()
	if err != nil {
		return nil, err
	}
	format, err := StoreFormat()
	if err != nil {
		return nil, err
	}
	return store.OpenOrCreate(p, format)
}

// Load registers the schema and hydrates it from the store.
func Load(ctx context.Context) (*option.Model, *store.File, error) {
	m, err := Model()
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading schema")
	}
	file, err := OpenStore()
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening store")
	}
	hydrate.Hydrate(m, file, hydrate.WithLogger(logging.FromContext(ctx)))
	return m, file, nil
}

// Save persists m into file and writes it to disk, backing up the previous
// file first when backups are enabled. It reports whether the file changed.
func Save(ctx context.Context, m *option.Model, file *store.File, reason string) (bool, error) {
	logger := logging.FromContext(ctx)
	if err := hydrate.Persist(m, file, hydrate.WithLogger(logger)); err != nil {
		return false, errors.Wrap(err, "persisting options")
	}
	if err := BeforeSave(reason)(file.Path); err != nil {
		return false, err
	}
	changed, err := file.Save()
	if err != nil {
		return false, err
	}
	logger.Debug("store saved", "path", file.Path, "changed", changed)
	return changed, nil
}

// BeforeSave returns a hook that snapshots a store file before it is
// overwritten, or a no-op when backups are disabled.
func BeforeSave(reason string) func(path string) error {
	if !Config().Backup.Enabled {
		return func(string) error { return nil }
	}
	return func(path string) error {
		return backup.EnsureBackedUp(BackupManager(), reason, path)
	}
}

// BackupManager returns a backup manager honoring the configured retention.
func BackupManager() *backup.Manager {
	backup.Version = cmd.Version
	opts := []backup.Option{}
	if n := Config().Backup.Retention; n > 0 {
		opts = append(opts, backup.WithRetentionCount(n))
	}
	return backup.NewManager(opts...)
}
