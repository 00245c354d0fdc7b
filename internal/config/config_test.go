package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/paths"
)

// isolate points every search location at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	paths.Reload()
	t.Cleanup(paths.Reload)
	dir := t.TempDir()
	t.Setenv("SOLVERCFG_CONFIG_DIR", dir)
	t.Chdir(t.TempDir())
	return dir
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("store.path"); got != paths.DefaultStorePath() {
		t.Errorf("store.path default = %q, want %q", got, paths.DefaultStorePath())
	}
	if !viper.GetBool("backup.enabled") {
		t.Error("expected backup.enabled default true")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Store.Format != "auto" || cfg.UI.Mode != UIModeTUI || cfg.Backup.Retention != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if FileUsed() != "" {
		t.Errorf("FileUsed() = %q, want empty", FileUsed())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("store:\n  path: /srv/solver.toml\n  format: toml\nui:\n  mode: prompt\nbackup:\n  retention: 2\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Store.Path != "/srv/solver.toml" || cfg.Store.Format != "toml" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.UI.Mode != UIModePrompt {
		t.Errorf("ui.mode = %q", cfg.UI.Mode)
	}
	if cfg.Backup.Retention != 2 || !cfg.Backup.Enabled {
		t.Errorf("backup = %+v", cfg.Backup)
	}
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  mode: prompt\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UI.Mode != UIModePrompt {
		t.Errorf("ui.mode = %q, want prompt", cfg.UI.Mode)
	}
	if FileUsed() != filepath.Join(dir, "config.yaml") {
		t.Errorf("FileUsed() = %q", FileUsed())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SOLVERCFG_STORE_PATH", "/env/solver.yaml")
	t.Setenv("SOLVERCFG_UI_MODE", "prompt")

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Path != "/env/solver.yaml" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if cfg.UI.Mode != UIModePrompt {
		t.Errorf("ui.mode = %q", cfg.UI.Mode)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "newer version",
			content: "version: 2\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "bad store format",
			content: "store:\n  format: xml\n",
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad ui mode",
			content: "ui:\n  mode: gui\n",
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			Init()

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	dirB := isolate(t)

	fileA := filepath.Join(t.TempDir(), "config_a.yaml")
	if err := os.WriteFile(fileA, []byte("version: 1\nui:\n  mode: tui\n"), 0600); err != nil {
		t.Fatal(err)
	}
	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("First Load failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dirB, "config.yaml"), []byte("version: 1\nui:\n  mode: prompt\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// Re-initializing must forget fileA.
	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Second Load failed: %v", err)
	}
	if cfg.UI.Mode != UIModePrompt {
		t.Errorf("expected config from search path, got mode %q (file %s)", cfg.UI.Mode, FileUsed())
	}
}

func TestParse(t *testing.T) {
	isolate(t)

	cfg, err := Parse([]byte("version: 1\nui:\n  mode: prompt\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.UI.Mode != UIModePrompt {
		t.Errorf("ui.mode = %q, want %q", cfg.UI.Mode, UIModePrompt)
	}
	if cfg.Backup.Retention != 5 {
		t.Errorf("backup.retention = %d, want the default 5", cfg.Backup.Retention)
	}

	_, err = Parse([]byte("version: 1\nbackup:\n  retention: 0\n"))
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if _, err := Parse([]byte("ui: [unterminated\n")); err == nil {
		t.Error("expected a parse error")
	}
}
