package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Lock acquisition behavior. The lock is advisory: it only coordinates
// cooperating engine processes, which is the whole concurrency model here.
const (
	// LockTimeout bounds how long acquisition waits before giving up.
	LockTimeout = 2 * time.Second

	// lockPollInterval is the retry cadence while the lock is held.
	lockPollInterval = 50 * time.Millisecond

	lockFile = SessionFile + ".lock"
)

// ErrLockTimeout reports that the data directory's lock could not be
// acquired within the timeout. Transient: the caller should retry the turn;
// no partial state is ever visible.
type ErrLockTimeout struct {
	Path    string
	Timeout time.Duration
}

func (e *ErrLockTimeout) Error() string {
	return fmt.Sprintf("lock %s not acquired within %s", e.Path, e.Timeout)
}

// WithLock acquires the directory lock, runs fn, and releases the lock on
// every exit path. Returns *ErrLockTimeout if another process holds the
// lock for the full timeout window.
func (r *FileRepo) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	lockPath := filepath.Join(r.dir, lockFile)

	fd, err := acquireLock(ctx, lockPath)
	if err != nil {
		return err
	}
	defer releaseLock(lockPath, fd)

	return fn(ctx)
}

// acquireLock polls exclusive-create on the lock file until it succeeds or
// the timeout elapses.
func acquireLock(ctx context.Context, lockPath string) (*os.File, error) {
	deadline := time.Now().Add(LockTimeout)
	for {
		fd, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
		if err == nil {
			return fd, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, &ErrLockTimeout{Path: lockPath, Timeout: LockTimeout}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}

func releaseLock(lockPath string, fd *os.File) {
	fd.Close()
	// Removal failure leaves a stale lock; the next acquisition surfaces
	// it as a timeout rather than corruption.
	os.Remove(lockPath)
}
