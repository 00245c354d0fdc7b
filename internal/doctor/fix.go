package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Fixer is implemented by checks that can repair what they report.
// CanFix and Fix are only meaningful after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one attempted repair.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// storePerm is what a world-writable store is reset to.
const storePerm os.FileMode = 0o644

// PermissionFixer resets the mode of files a check found world-writable.
type PermissionFixer struct {
	paths []string
}

// CanFix reports whether any file is waiting for a chmod.
func (f *PermissionFixer) CanFix() bool { return len(f.paths) > 0 }

// Fix chmods every recorded file to storePerm.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.paths))
	for _, path := range f.paths {
		result := FixResult{Path: path, Description: fmt.Sprintf("chmod %04o", storePerm)}
		if err := os.Chmod(path, storePerm); err != nil {
			result.Error = errors.Wrapf(err, "chmod %04o %s", storePerm, path)
			result.Description = result.Error.Error()
		} else {
			result.Fixed = true
		}
		results = append(results, result)
	}
	f.paths = nil
	return results
}

func (f *PermissionFixer) reset()           { f.paths = nil }
func (f *PermissionFixer) flag(path string) { f.paths = append(f.paths, path) }
