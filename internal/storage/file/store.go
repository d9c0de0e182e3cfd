// Package file stores each key as a file under a home directory. Writes go
// through a temp file and rename; a lock file serializes access between
// concurrently running shells.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"portal/internal/storage"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/sentinel"
)

const (
	lockFile       = ".portal.lock"
	lockRetryDelay = 25 * time.Millisecond
	fileMode       = 0o600
	dirMode        = 0o700
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store is a directory of <key>.json files.
type Store struct {
	dir string
	// mu serializes goroutines; flock.Flock treats a second lock from the
	// same handle as already held.
	mu   sync.Mutex
	lock *flock.Flock
}

var _ storage.Store = (*Store)(nil)

// New creates dir if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "storage directory is required")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: dir, lock: flock.New(filepath.Join(dir, lockFile))}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	var out []byte
	err = s.withLock(ctx, func() error {
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return sentinel.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		out = b
		return nil
	})
	return out, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		return writeFile(path, value, fileMode)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", key, err)
		}
		return nil
	})
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid storage key")
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("%w: acquire storage lock: %v", sentinel.ErrUnavailable, err)
	}
	if !locked {
		return fmt.Errorf("%w: storage lock busy", sentinel.ErrUnavailable)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
