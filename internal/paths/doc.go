// Package paths resolves the directories solvercfg reads and writes.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory
// compliance. On Linux, paths follow XDG conventions (~/.config and
// ~/.local/share); macOS and Windows use their native
// equivalents.
//
//	paths.ConfigDir()        // $XDG_CONFIG_HOME/solvercfg
//	paths.DefaultStorePath() // $XDG_CONFIG_HOME/solvercfg/solver.ini
//	paths.BackupDir()        // $XDG_DATA_HOME/solvercfg/backups
//
// xdg caches the environment at start-up; call [Reload] after changing
// XDG_* variables (tests do this with t.Setenv).
package paths
