package install

import (
	"fmt"
	"path/filepath"

	"github.com/tharvik/flock"
)

// lock takes a non-blocking file lock so that two installers of the same
// app cannot interleave. The lock file is left in place.
func (in *Installer) lock() (func(), error) {
	path := filepath.Join(in.tempDir, in.cfg.AppName+".install.lock")

	fileLock := flock.New(path)

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s is locked", ErrLocked, path)
	}

	in.logger.Debug("acquired install lock", "path", path)

	unlock := func() {
		if err := fileLock.Unlock(); err != nil {
			in.logger.Error("failed to release install lock", "path", path, "error", err)
		}
	}

	return unlock, nil
}
