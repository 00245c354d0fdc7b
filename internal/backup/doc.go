// Package backup snapshots the parameter store before solvercfg overwrites
// it, and restores those snapshots on request.
//
// Each backup is a timestamped directory containing:
//
//   - manifest.json: metadata, including a SHA256 hash per file
//   - the copied files, with their permissions recorded
//
//	~/.local/share/solvercfg/backups/
//	└── {timestamp}/
//	    ├── manifest.json
//	    └── {copied files...}
//
// # Creating Backups
//
//	mgr := backup.NewManager(backup.WithRetentionCount(5))
//	manifest, err := mgr.Backup("edit", "/home/me/.config/solvercfg/solver.ini")
//
// Commands call [EnsureBackedUp] right before saving so a store is copied
// at most once per run. Backup prunes beyond the retention count.
//
// # Restoring Backups
//
//	manifest, err := mgr.Restore("20260123T100712")
//
// Restore verifies every file against its hash before writing any of them;
// a mismatch returns [ErrBackupCorrupted] and leaves the originals alone.
package backup
