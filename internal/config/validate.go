package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/store"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnsupportedVersion indicates a config written by a newer release.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidValue indicates a value outside the accepted set.
	ErrInvalidValue = errors.New("invalid value")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	switch {
	case cfg.Version < 1:
		errs = append(errs, ErrVersionTooLow)
	case cfg.Version > CurrentVersion:
		errs = append(errs, errors.Wrapf(ErrUnsupportedVersion, "%d", cfg.Version))
	}

	if err := validatePath(cfg.Store.Path); err != nil || cfg.Store.Path == "" {
		errs = append(errs, &PathError{Field: "store.path", Path: cfg.Store.Path, Err: ErrInvalidPath})
	}

	if _, err := store.ParseFormat(cfg.Store.Format); err != nil {
		errs = append(errs, &FieldError{
			Field: "store.format",
			Value: cfg.Store.Format,
			Want:  store.Formats(),
			Err:   ErrInvalidValue,
		})
	}

	if err := validatePath(cfg.Schema.Path); err != nil {
		errs = append(errs, &PathError{Field: "schema.path", Path: cfg.Schema.Path, Err: err})
	}

	if cfg.Backup.Retention < 1 {
		errs = append(errs, &FieldError{
			Field: "backup.retention",
			Value: fmt.Sprint(cfg.Backup.Retention),
			Want:  []string{">= 1"},
			Err:   ErrInvalidValue,
		})
	}

	switch cfg.UI.Mode {
	case UIModeTUI, UIModePrompt:
	default:
		errs = append(errs, &FieldError{
			Field: "ui.mode",
			Value: cfg.UI.Mode,
			Want:  []string{UIModeTUI, UIModePrompt},
			Err:   ErrInvalidValue,
		})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError reports a configuration value outside its accepted set.
type FieldError struct {
	Field string
	Value string
	Want  []string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %q (want %s)", e.Field, e.Err.Error(), e.Value, strings.Join(e.Want, ", "))
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
