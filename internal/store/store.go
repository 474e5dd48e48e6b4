// Package store persists the adaptive session state as a single JSON
// document per data directory. All read-modify-write cycles serialize
// through an exclusive advisory file lock, and every write lands via a
// temp-file-plus-rename sequence so readers never observe a partial file.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// SessionFile is the primary state file name inside the data directory.
const SessionFile = "adaptive-session.json"

// SessionRepo is the persistence contract the orchestrator depends on.
// Implementations must guarantee that fn in WithLock runs under mutual
// exclusion with any other process targeting the same data directory.
type SessionRepo interface {
	// WithLock runs fn while holding the directory's exclusive lock.
	// The lock is released on every exit path.
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error

	// Load reads the current session state. A missing or corrupt state
	// file yields (nil, nil): the caller reinitializes.
	Load(ctx context.Context) (*SessionState, error)

	// Save writes the session state atomically.
	Save(ctx context.Context, state *SessionState) error

	// SaveStudentState writes the derived mastery export. Best effort;
	// failures must not fail the turn.
	SaveStudentState(ctx context.Context, export *StudentState) error

	// LoadStudentState reads the newest mastery export, or nil if none
	// exists or it cannot be parsed.
	LoadStudentState(ctx context.Context) (*StudentState, error)
}

// FileRepo implements SessionRepo on a local data directory.
type FileRepo struct {
	dir string
}

// NewFileRepo creates a FileRepo rooted at dir, creating it if needed.
func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

// Dir returns the data directory this repo operates on.
func (r *FileRepo) Dir() string {
	return r.dir
}

func (r *FileRepo) statePath() string {
	return filepath.Join(r.dir, SessionFile)
}

// DefaultDataDir resolves the data directory in priority order:
// 1. ADAPT_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/adapt/data
// 3. ~/.local/share/adapt/data
func DefaultDataDir() (string, error) {
	if p := os.Getenv("ADAPT_DATA_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "adapt", "data"), nil
}
