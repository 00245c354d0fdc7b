package backup

import (
	"path/filepath"
	"sync"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// backupOnce tracks which files were already backed up in this process.
// This prevents redundant backups when one command saves a store twice.
var (
	backupOnce  = make(map[string]*sync.Once)
	backupMutex sync.Mutex
)

// EnsureBackedUp backs up path with mgr before it is first overwritten in
// this process. Later calls for the same path are no-ops. A missing file
// is not an error: there is nothing to lose.
func EnsureBackedUp(mgr *Manager, reason, path string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}

	backupMutex.Lock()
	once, exists := backupOnce[key]
	if !exists {
		once = &sync.Once{}
		backupOnce[key] = once
	}
	backupMutex.Unlock()

	var backupErr error
	once.Do(func() {
		_, backupErr = mgr.Backup(reason, key)
		if errors.Is(backupErr, ErrNothingToBackUp) {
			backupErr = nil
			return
		}
		if backupErr != nil {
			// Let the caller retry.
			backupMutex.Lock()
			delete(backupOnce, key)
			backupMutex.Unlock()
		}
	})

	if backupErr != nil {
		return errors.Wrapf(backupErr, "backing up %s", path)
	}
	return nil
}

// ResetBackupState forgets which files were backed up.
// This is primarily useful for testing to reset state between tests.
func ResetBackupState() {
	backupMutex.Lock()
	defer backupMutex.Unlock()
	backupOnce = make(map[string]*sync.Once)
}
