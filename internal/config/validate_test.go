package config

import (
	"testing"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

func validConfig() *Config {
	return &Config{
		Version: 1,
		Store:   StoreConfig{Path: "/tmp/solver.ini", Format: "auto"},
		Backup:  BackupConfig{Enabled: true, Retention: 5},
		UI:      UIConfig{Mode: UIModeTUI},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		field   string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "version zero", mutate: func(c *Config) { c.Version = 0 }, wantErr: ErrVersionTooLow},
		{name: "version too new", mutate: func(c *Config) { c.Version = 9 }, wantErr: ErrUnsupportedVersion},
		{name: "empty store path", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: ErrInvalidPath, field: "store.path"},
		{name: "nul in schema path", mutate: func(c *Config) { c.Schema.Path = "a\x00b" }, wantErr: ErrInvalidPath, field: "schema.path"},
		{name: "format", mutate: func(c *Config) { c.Store.Format = "json" }, wantErr: ErrInvalidValue, field: "store.format"},
		{name: "empty format means auto", mutate: func(c *Config) { c.Store.Format = "" }},
		{name: "retention", mutate: func(c *Config) { c.Backup.Retention = 0 }, wantErr: ErrInvalidValue, field: "backup.retention"},
		{name: "ui mode", mutate: func(c *Config) { c.UI.Mode = "web" }, wantErr: ErrInvalidValue, field: "ui.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			errs := Validate(cfg)

			if tt.wantErr == nil {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want none", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want one error", errs)
			}
			if !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("error = %v, want %v", errs[0], tt.wantErr)
			}
			if tt.field != "" {
				var fe *FieldError
				var pe *PathError
				switch {
				case errors.As(errs[0], &fe):
					if fe.Field != tt.field {
						t.Errorf("field = %q, want %q", fe.Field, tt.field)
					}
				case errors.As(errs[0], &pe):
					if pe.Field != tt.field {
						t.Errorf("field = %q, want %q", pe.Field, tt.field)
					}
				default:
					t.Errorf("error %T carries no field", errs[0])
				}
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v", errs)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := validConfig()
	cfg.Version = 0
	cfg.UI.Mode = ""
	cfg.Backup.Retention = -1
	if errs := Validate(cfg); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}
