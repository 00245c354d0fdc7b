package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/paths"
	"github.com/thoreinstein/solvercfg/pkg/fileutil"
)

// Version is set at start-up from the build version.
var Version = "dev"

// idLayout formats backup IDs.
const idLayout = "20060102T150405"

// Manager handles backup creation, restoration, and management.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root backup directory.
func (m *Manager) Dir() string { return m.rootDir }

// Backup snapshots the given files and prunes beyond the retention count.
// Missing files are skipped; if none exist, ErrNothingToBackUp is returned.
// Each file is copied with preserved permissions and verified with a SHA256 hash.
func (m *Manager) Backup(reason string, files ...string) (*BackupManifest, error) {
	if len(files) == 0 {
		return nil, errors.New("at least one path is required")
	}

	var present []string
	for _, p := range files {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", p)
		}
		present = append(present, abs)
	}
	if len(present) == 0 {
		return nil, ErrNothingToBackUp
	}

	created := m.now().UTC()
	backupID, backupPath, err := m.reserve(created)
	if err != nil {
		return nil, err
	}

	manifest := &BackupManifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Reason:      reason,
		ToolVersion: Version,
		ID:          backupID,
	}
	for _, src := range present {
		bf, err := backupFile(src, backupPath)
		if err != nil {
			_ = os.RemoveAll(backupPath)
			return nil, errors.Wrapf(err, "backing up file %s", src)
		}
		manifest.Files = append(manifest.Files, *bf)
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}

	return manifest, nil
}

// reserve creates a fresh backup directory named after t. Backups taken
// within the same second get a numeric suffix.
func (m *Manager) reserve(t time.Time) (string, string, error) {
	if err := os.MkdirAll(m.rootDir, 0o700); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	base := t.Format(idLayout)
	for i := 0; i < 1000; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := m.backupPath(id)
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
	return "", "", errors.Newf("too many backups at %s", base)
}

// backupFile copies a single file to the backup directory.
func backupFile(src, backupPath string) (*BackupFile, error) {
	relPath := generateRelPath(src)
	dst := filepath.Join(backupPath, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, size, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &BackupFile{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
		Size:         size,
	}, nil
}

// Restore writes the files of a backup back to their original locations.
// Every file is verified against its recorded hash before anything is
// written.
func (m *Manager) Restore(backupID string) (*BackupManifest, error) {
	manifest, contents, err := m.load(backupID)
	if err != nil {
		return nil, err
	}
	return manifest, writeBack(manifest, contents)
}

// RestoreWithBackup is Restore, but first backs up the files it is about
// to replace so the restore can itself be undone. The backup being
// restored is read before that snapshot, so retention pruning cannot
// remove it midway.
func (m *Manager) RestoreWithBackup(backupID string) (restored, snapshot *BackupManifest, err error) {
	manifest, contents, err := m.load(backupID)
	if err != nil {
		return nil, nil, err
	}

	current := make([]string, len(manifest.Files))
	for i, bf := range manifest.Files {
		current[i] = bf.OriginalPath
	}
	snapshot, err = m.Backup("restore "+backupID, current...)
	if err != nil && !errors.Is(err, ErrNothingToBackUp) {
		return nil, nil, errors.Wrap(err, "backing up current files")
	}

	return manifest, snapshot, writeBack(manifest, contents)
}

// load reads and verifies every file of a backup.
func (m *Manager) load(backupID string) (*BackupManifest, [][]byte, error) {
	manifest, err := m.Get(backupID)
	if err != nil {
		return nil, nil, err
	}

	backupPath := m.backupPath(backupID)

	contents := make([][]byte, len(manifest.Files))
	for i, bf := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != bf.SHA256Hash {
			return nil, nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
		contents[i] = data
	}
	return manifest, contents, nil
}

func writeBack(manifest *BackupManifest, contents [][]byte) error {
	for i, bf := range manifest.Files {
		if err := os.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}
		if err := fileutil.AtomicWriteFile(bf.OriginalPath, contents[i], bf.Mode.Perm()); err != nil {
			return errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
	}
	return nil
}

// List returns all available backups, sorted by date (newest first).
func (m *Manager) List() ([]BackupManifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]BackupManifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b BackupManifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return manifests, nil
}

// Prune removes old backups, keeping the most recent keep.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(backupID string) (*BackupManifest, error) {
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}
	if strings.ContainsAny(backupID, `/\`) || backupID == "." || backupID == ".." {
		return nil, errors.Newf("invalid backup ID %q", backupID)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(backupID), ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

func (m *Manager) backupPath(backupID string) string {
	return filepath.Join(m.rootDir, backupID)
}

// copyFile copies src to dst, returning the SHA256 hash, mode and size.
func copyFile(src, dst string) (hash string, mode fs.FileMode, size int64, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	size, err = io.Copy(io.MultiWriter(dstFile, h), srcFile)
	if err != nil {
		dstFile.Close()
		return "", 0, 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, size, nil
}

// generateRelPath turns an absolute path into a relative storage path with
// no volume name or colons.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	clean = strings.TrimPrefix(clean, filepath.VolumeName(clean))
	clean = strings.TrimLeft(clean, `/\`)
	return strings.ReplaceAll(clean, ":", "")
}
