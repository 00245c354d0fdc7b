package doctor

import (
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/solvercfg/internal/config"
	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/hydrate"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/schema"
	"github.com/thoreinstein/solvercfg/internal/store"
)

// ConfigCheck reports whether the tool configuration loaded and validates.
type ConfigCheck struct {
	cfg     *config.Config
	file    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck checks the outcome of config.Load: cfg and loadErr as it
// returned them, and the file it read ("" for defaults).
func NewConfigCheck(cfg *config.Config, file string, loadErr error) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	source := c.file
	if source == "" {
		source = "(defaults)"
	}
	result.Details = map[string]any{"file": source}

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = c.loadErr.Error()
		result.FixHint = "fix or remove " + source
		return result
	}
	if errs := config.Validate(c.cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid setting(s)", len(errs))
		result.Details["errors"] = msgs
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration is valid"
	return result
}

// SchemaCheck loads the option schema. Later checks read the model from it.
type SchemaCheck struct {
	path  string
	model *option.Model
}

var _ Check = (*SchemaCheck)(nil)

// NewSchemaCheck checks the schema at path; "" selects the built-in schema.
func NewSchemaCheck(path string) *SchemaCheck {
	return &SchemaCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *SchemaCheck) Name() string { return "schema" }

// Category returns the grouping for this check.
func (c *SchemaCheck) Category() string { return "schema" }

// Model returns the loaded model, or nil before Run or after a failure.
func (c *SchemaCheck) Model() *option.Model { return c.model }

// Run executes the check.
func (c *SchemaCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	source := c.path
	if source == "" {
		source = "(built-in)"
	}
	result.Details = map[string]any{"schema": source}

	var err error
	if c.path == "" {
		c.model, err = schema.Default()
	} else {
		c.model, err = schema.Load(c.path)
	}
	if err != nil {
		c.model = nil
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "fix the schema file or unset schema.path"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d options in %d categories", c.model.Len(), len(c.model.Categories()))
	return result
}

// StoreCheck verifies the parameter store can be read and is not
// world-writable.
type StoreCheck struct {
	PermissionFixer

	path   string
	format store.Format
	file   *store.File
}

var (
	_ Check = (*StoreCheck)(nil)
	_ Fixer = (*StoreCheck)(nil)
)

// NewStoreCheck checks the store at path.
func NewStoreCheck(path string, format store.Format) *StoreCheck {
	return &StoreCheck{path: path, format: format}
}

// Name returns the unique identifier for this check.
func (c *StoreCheck) Name() string { return "store" }

// Category returns the grouping for this check.
func (c *StoreCheck) Category() string { return "store" }

// File returns the opened store. A store that does not exist yet is
// returned empty. It is nil before Run or when the store is unreadable.
func (c *StoreCheck) File() *store.File { return c.file }

// Run executes the check.
func (c *StoreCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}
	c.reset()

	file, err := store.OpenOrCreate(c.path, c.format)
	if err != nil {
		c.file = nil
		result.Status = SeverityError
		result.Message = err.Error()
		if errors.Is(err, store.ErrUnknownFormat) {
			result.FixHint = "set store.format to one of ini, toml, yaml"
		} else {
			result.FixHint = "Run: solvercfg backup list, then solvercfg backup restore <id>"
		}
		return result
	}
	c.file = file
	result.Details["format"] = string(file.Format)

	if !file.Existed {
		result.Status = SeverityInfo
		result.Message = "store does not exist yet; every option uses its default"
		result.FixHint = "Run: solvercfg init"
		return result
	}

	info, err := os.Stat(c.path)
	if err == nil && runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		c.flag(c.path)
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("store is world-writable (%04o)", info.Mode().Perm())
		result.Fixable = true
		result.FixHint = fmt.Sprintf("chmod %04o %s", storePerm, c.path)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s store with %d section(s)", file.Format, len(file.Sections()))
	return result
}

// FallbackCheck lists options that the store cannot supply, which load as
// their defaults without any error.
type FallbackCheck struct {
	schema     *SchemaCheck
	store      *StoreCheck
	beforeSave func(path string) error

	findings []hydrate.Finding
}

var (
	_ Check = (*FallbackCheck)(nil)
	_ Fixer = (*FallbackCheck)(nil)
)

// NewFallbackCheck diagnoses the model and store produced by the given
// checks, which must run first. beforeSave, if set, runs before Fix
// rewrites the store.
func NewFallbackCheck(schemaCheck *SchemaCheck, storeCheck *StoreCheck, beforeSave func(path string) error) *FallbackCheck {
	return &FallbackCheck{schema: schemaCheck, store: storeCheck, beforeSave: beforeSave}
}

// Name returns the unique identifier for this check.
func (c *FallbackCheck) Name() string { return "fallback" }

// Category returns the grouping for this check.
func (c *FallbackCheck) Category() string { return "store" }

// Findings returns the options found falling back by the last Run.
func (c *FallbackCheck) Findings() []hydrate.Finding { return c.findings }

// Run executes the check.
func (c *FallbackCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.findings = nil

	m, file := c.schema.Model(), c.store.File()
	if m == nil || file == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: schema or store unavailable"
		return result
	}

	c.findings = hydrate.Diagnose(m, file)
	if len(c.findings) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("all %d options read from the store", m.Len())
		return result
	}

	malformed := 0
	for _, f := range c.findings {
		if f.Reason == hydrate.ReasonMalformed {
			malformed++
		}
	}

	result.Details = map[string]any{"findings": c.findings}
	result.Message = fmt.Sprintf("%d of %d options fall back to defaults", len(c.findings), m.Len())
	result.Fixable = true
	result.FixHint = "Run: solvercfg doctor --fix (writes the effective values to the store)"
	if malformed > 0 {
		result.Status = SeverityWarning
		result.Message += fmt.Sprintf(" (%d malformed)", malformed)
	} else {
		result.Status = SeverityInfo
	}
	return result
}

// CanFix reports whether the last Run found fallbacks.
func (c *FallbackCheck) CanFix() bool {
	return len(c.findings) > 0
}

// Fix hydrates the model and writes every effective value back, so the
// store then supplies each option explicitly.
func (c *FallbackCheck) Fix() []FixResult {
	m, file := c.schema.Model(), c.store.File()
	if !c.CanFix() || m == nil || file == nil {
		return nil
	}
	result := FixResult{Path: file.Path}

	hydrate.Hydrate(m, file)
	if err := hydrate.Persist(m, file); err != nil {
		result.Error = err
		result.Description = "failed to persist: " + err.Error()
		return []FixResult{result}
	}
	if c.beforeSave != nil {
		if err := c.beforeSave(file.Path); err != nil {
			result.Error = err
			result.Description = "backup failed: " + err.Error()
			return []FixResult{result}
		}
	}
	if _, err := file.Save(); err != nil {
		result.Error = err
		result.Description = "failed to save: " + err.Error()
		return []FixResult{result}
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("wrote %d option(s) that fell back to defaults", len(c.findings))
	return []FixResult{result}
}
