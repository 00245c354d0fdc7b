package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	// AppName is the directory name under the XDG homes.
	AppName = "solvercfg"

	// DefaultStoreFile is the parameter store's file name when
	// store.path is not configured.
	DefaultStoreFile = "solver.ini"

	// DefaultDirPerm is used by EnsureDir when no mode is given.
	DefaultDirPerm = 0o700
)

var (
	ErrHomeDirNotFound = errors.New("home directory not found")
	ErrInvalidPath     = errors.New("invalid path")
)

// EnsureDir creates path and its parents. A zero perm means DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

func home() (string, error) {
	h, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return h, nil
}

// Reload re-reads the XDG_* variables.
func Reload() {
	xdg.Reload()
}

// ConfigDir holds config.yaml and, by default, the parameter store.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir holds state that is not configuration.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

func DefaultStorePath() string {
	return filepath.Join(ConfigDir(), DefaultStoreFile)
}

// BackupDir is the root under which each backup gets its own directory.
func BackupDir() string {
	return filepath.Join(DataDir(), "backups")
}

// Expand resolves a leading "~" and $VARIABLES in path and cleans the
// result. Empty paths and paths containing NUL are ErrInvalidPath.
func Expand(path string) (string, error) {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		h, err := home()
		if err != nil {
			return "", err
		}
		path = filepath.Join(h, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
