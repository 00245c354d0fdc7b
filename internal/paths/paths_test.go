package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

func TestAppDirs(t *testing.T) {
	configHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	Reload()
	t.Cleanup(Reload)

	assert.Equal(t, filepath.Join(configHome, "solvercfg"), ConfigDir())
	assert.Equal(t, filepath.Join(dataHome, "solvercfg"), DataDir())
	assert.Equal(t, filepath.Join(configHome, "solvercfg", "solver.ini"), DefaultStorePath())
	assert.Equal(t, filepath.Join(dataHome, "solvercfg", "backups"), BackupDir())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "solvercfg", "backups")

	require.NoError(t, EnsureDir(dir, 0))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(DefaultDirPerm), info.Mode().Perm())

	assert.NoError(t, EnsureDir(dir, 0), "existing directory")
}

func TestExpand(t *testing.T) {
	h, err := home()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("SOLVERCFG_TEST_DIR", "/srv/solver")

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "absolute", in: "/etc/solver.ini", want: "/etc/solver.ini"},
		{name: "tilde", in: "~/solver.ini", want: filepath.Join(h, "solver.ini")},
		{name: "bare tilde", in: "~", want: h},
		{name: "tilde user form is literal", in: "~bob/solver.ini", want: "~bob/solver.ini"},
		{name: "env", in: "$SOLVERCFG_TEST_DIR/run.toml", want: "/srv/solver/run.toml"},
		{name: "cleaned", in: "/tmp/../etc//x.ini", want: "/etc/x.ini"},
		{name: "empty", in: "", wantErr: true},
		{name: "nul", in: "a\x00b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidPath), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
