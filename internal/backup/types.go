package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

const (
	// ManifestVersion is written into every manifest. Bump it when the
	// layout of a backup directory changes.
	ManifestVersion = 1

	// ManifestFile names the manifest inside a backup directory.
	ManifestFile = "manifest.json"

	// DefaultRetentionCount is how many backups survive pruning unless the
	// config says otherwise.
	DefaultRetentionCount = 5
)

var (
	ErrNoBackupsFound  = errors.New("no backups found")
	ErrBackupCorrupted = errors.New("backup corrupted")
	ErrNothingToBackUp = errors.New("nothing to back up")
)

// BackupManifest is the manifest.json of one backup. ID is the directory
// name (20260301T090000 form) and is filled in on load.
type BackupManifest struct {
	Version     int          `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	Reason      string       `json:"reason,omitempty"`
	Files       []BackupFile `json:"files"`
	ToolVersion string       `json:"tool_version"`
	ID          string       `json:"-"`
}

// BackupFile records one copied store file. RelPath is relative to the
// backup directory and SHA256Hash is verified before any restore writes.
type BackupFile struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256Hash   string      `json:"sha256_hash"`
	Mode         fs.FileMode `json:"mode"`
	Size         int64       `json:"size"`
}
