// Package filelock guards daypick's output directory against concurrent runs
// and provides atomic JSON writes for report files.
package filelock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an advisory lock held for the duration of a copy execution so
// two invocations cannot interleave writes into the same output directory.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a run lock backed by a lock file at the given path.
func NewRunLock(path string) *RunLock {
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire the lock without blocking. Returns false when
// another process holds it.
func (rl *RunLock) TryLock() (bool, error) {
	acquired, err := rl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", rl.path, err)
	}
	return acquired, nil
}

// Lock acquires the lock, blocking until it is available.
func (rl *RunLock) Lock() error {
	if err := rl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", rl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (rl *RunLock) Unlock() error {
	if err := rl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", rl.path, err)
	}
	return nil
}

// AtomicWrite writes data to path via a temp file in the same directory and
// an atomic rename, so readers never observe a partial report. The parent
// directory is created if missing. On failure the original file, if any, is
// left untouched.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory keeps the temp file on the same filesystem, which is
	// what makes the rename atomic.
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Rename succeeded; suppress the deferred cleanup.
	tempFile = nil
	return nil
}

// WriteJSON marshals v with indentation and writes it atomically to path.
// Used for picked_<timestamp>.json and report_<timestamp>.json outputs.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return AtomicWrite(path, append(data, '\n'))
}
