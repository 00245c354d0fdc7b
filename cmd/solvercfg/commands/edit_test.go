package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/presenter"
	"github.com/thoreinstein/solvercfg/internal/schema"
)

func TestEdit_PromptConfirm(t *testing.T) {
	storePath := isolate(t)
	writeFile(t, storePath, solverStore)

	out, err := execute(t, "H1parameter=20\nANIME3D.MaxReflexion=3\n:ok\n",
		"edit", "--ui", "prompt", "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "[DEFAULTSOLVER]", "tabs are rendered")
	assert.Contains(t, out, "Saved 2 change(s)")

	content := readFile(t, storePath)
	assert.Regexp(t, `(?m)^H1parameter\s*=\s*20\.0$`, content)
	assert.Regexp(t, `(?m)^MaxReflexion\s*=\s*3$`, content)
	// The malformed entry is replaced by the effective value.
	assert.Regexp(t, `(?m)^NbThreads\s*=\s*4$`, content)
}

func TestEdit_PromptCancel(t *testing.T) {
	storePath := isolate(t)
	writeFile(t, storePath, solverStore)

	out, err := execute(t, "H1parameter=20\n:cancel\n", "edit", "--ui", "prompt", "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Edit cancelled")
	assert.Equal(t, solverStore, readFile(t, storePath))
}

func TestEdit_EOFCancels(t *testing.T) {
	storePath := isolate(t)

	out, err := execute(t, "H1parameter=20\n", "edit", "--ui", "prompt", "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Edit cancelled")
	assert.NoFileExists(t, storePath)
}

func TestEdit_TUIWithoutTerminalUsesPrompt(t *testing.T) {
	storePath := isolate(t)

	out, err := execute(t, "UseScreen=no\n:ok\n", "edit", "--ui", "tui", "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 1 change(s)")
	assert.Regexp(t, `(?m)^UseScreen\s*=\s*False$`, readFile(t, storePath))
}

func TestEdit_UIFromConfig(t *testing.T) {
	storePath := isolate(t)
	writeFile(t, "config.yaml", "version: 1\nui:\n  mode: prompt\n")

	var gotMode string
	orig := newPresenter
	t.Cleanup(func() { newPresenter = orig })
	newPresenter = func(cmd *cobra.Command, mode string) (presenter.Presenter, error) {
		gotMode = mode
		return orig(cmd, mode)
	}

	_, err := execute(t, ":cancel\n", "edit", "--store", storePath)
	require.NoError(t, err)
	assert.Equal(t, "prompt", gotMode)
}

func TestEdit_UnknownUI(t *testing.T) {
	storePath := isolate(t)
	_, err := execute(t, "", "edit", "--ui", "gtk", "--store", storePath)
	requireExitCode(t, err, errors.ExitUser)
}

func TestCountChanges(t *testing.T) {
	m, err := schema.Default()
	require.NoError(t, err)
	before := m.Snapshot()

	spec, ok := m.Lookup("MESHING", "DebugMesh")
	require.True(t, ok)
	require.NoError(t, spec.Assign(option.BoolValue(true)))

	assert.Equal(t, 1, countChanges(before, m))
}

// fakeEditor installs a shell script as $EDITOR.
func fakeEditor(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("editor scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	t.Setenv("EDITOR", path)
}

func TestEdit_Raw(t *testing.T) {
	storePath := isolate(t)
	fakeEditor(t, `printf '[DEFAULTSOLVER]\nH1parameter = 30.0\nUseMeteo = maybe\n' > "$1"`)

	out, err := execute(t, "", "edit", "--raw", "--store", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+storePath)
	assert.Contains(t, out, "will use their default")

	assert.Equal(t, "[DEFAULTSOLVER]\nH1parameter = 30.0\nUseMeteo = maybe\n", readFile(t, storePath))
	assert.Equal(t, "30.0\n", mustExecute(t, "get", "H1parameter", "--store", storePath))
}

func TestEdit_RawRejectsBrokenFile(t *testing.T) {
	storePath := isolate(t)
	writeFile(t, storePath, solverStore)
	fakeEditor(t, `printf '[DEFAULTSOLVER\n' > "$1"`)

	_, err := execute(t, "", "edit", "--raw", "--store", storePath)
	requireExitCode(t, err, errors.ExitUser)
	assert.Equal(t, solverStore, readFile(t, storePath))
}

func TestEdit_RawAndUIExclusive(t *testing.T) {
	storePath := isolate(t)
	_, err := execute(t, "", "edit", "--raw", "--ui", "prompt", "--store", storePath)
	require.Error(t, err)
}
