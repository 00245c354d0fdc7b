// Package config provides configuration management for the solvercfg CLI.
//
// This is the tool's own configuration: where the parameter store lives,
// which schema describes it, and how editing and backups behave. It is
// distinct from the parameter store itself, which is managed by the store
// package.
//
// # Configuration File
//
// config.yaml is searched in $SOLVERCFG_CONFIG_DIR (when set), the current
// directory, and ~/.config/solvercfg:
//
//	version: 1
//	store:
//	  path: ~/.config/solvercfg/solver.ini
//	  format: auto        # auto, ini, toml or yaml
//	schema:
//	  path: ""            # empty selects the built-in solver schema
//	backup:
//	  enabled: true
//	  retention: 5
//	ui:
//	  mode: tui           # tui or prompt
//
// Every key can be overridden from the environment with the SOLVERCFG_
// prefix and dots replaced by underscores, e.g. SOLVERCFG_STORE_PATH.
//
// # Validation
//
// [Load] validates automatically. [Validate] returns every problem:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
package config
