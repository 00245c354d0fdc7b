// Package editor launches the user's preferred text editor on store files.
package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/pkg/fileutil"
)

// ErrInvalidEdit indicates the edited content failed validation. The
// error message names the file holding the rejected text.
var ErrInvalidEdit = errors.New("edited content is invalid")

// Editor runs an external editor attached to the given streams.
type Editor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run opens path in the user's preferred editor and waits for it to exit.
// It uses $EDITOR, falling back to $VISUAL, then nano, then vi. $EDITOR
// may carry arguments, e.g. "code --wait".
func (e *Editor) Run(ctx context.Context, path string) error {
	argv := strings.Fields(detectEditor())
	if len(argv) == 0 {
		return errors.New("no editor configured")
	}

	fmt.Fprintf(e.Stdout, "Location: %s\n", path)

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// EditValidated lets the user edit a scratch copy of path, then replaces
// path atomically if the content changed and validate accepts it. A
// missing path starts from empty content. On rejection the scratch copy is
// kept so the edit is not lost, and the returned error matches
// ErrInvalidEdit.
func (e *Editor) EditValidated(ctx context.Context, path string, perm fs.FileMode, validate func([]byte) error) (bool, error) {
	orig, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, errors.Wrap(err, "creating directory")
	}
	scratch, err := os.CreateTemp(dir, ".solvercfg-edit-*"+filepath.Ext(path))
	if err != nil {
		return false, errors.Wrap(err, "creating scratch file")
	}
	scratchPath := scratch.Name()
	keep := false
	defer func() {
		if !keep {
			_ = os.Remove(scratchPath)
		}
	}()

	if _, err := scratch.Write(orig); err != nil {
		scratch.Close()
		return false, errors.Wrap(err, "writing scratch file")
	}
	if err := scratch.Close(); err != nil {
		return false, errors.Wrap(err, "closing scratch file")
	}

	if err := e.Run(ctx, scratchPath); err != nil {
		return false, err
	}

	edited, err := fileutil.ReadFileWithLimit(scratchPath)
	if err != nil {
		return false, errors.Wrap(err, "reading edited file")
	}
	if bytes.Equal(orig, edited) {
		return false, nil
	}

	if validate != nil {
		if err := validate(edited); err != nil {
			keep = true
			return false, errors.Mark(errors.Wrapf(err, "edit kept in %s", scratchPath), ErrInvalidEdit)
		}
	}

	if err := fileutil.AtomicWriteFile(path, edited, perm); err != nil {
		return false, errors.Wrapf(err, "writing %s", path)
	}
	return true, nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// User-friendly fallback (nano is easier for beginners)
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback (vi is available on all Unix systems)
	return "vi"
}
