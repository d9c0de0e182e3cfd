package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/suite"

	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/sentinel"
)

type FileStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *FileStoreSuite) SetupTest() {
	store, err := New(s.T().TempDir())
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) TestRoundTrip() {
	s.Run("missing key returns ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, "portal_user")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("set then get returns the bytes", func() {
		s.Require().NoError(s.store.Set(s.ctx, "portal_user", []byte(`{"id":"admin"}`)))
		got, err := s.store.Get(s.ctx, "portal_user")
		s.Require().NoError(err)
		s.Equal(`{"id":"admin"}`, string(got))
	})

	s.Run("survives reopening the directory", func() {
		reopened, err := New(s.store.Dir())
		s.Require().NoError(err)
		got, err := reopened.Get(s.ctx, "portal_user")
		s.Require().NoError(err)
		s.Equal(`{"id":"admin"}`, string(got))
	})

	s.Run("delete is idempotent", func() {
		s.Require().NoError(s.store.Delete(s.ctx, "portal_user"))
		s.Require().NoError(s.store.Delete(s.ctx, "portal_user"))
		_, err := s.store.Get(s.ctx, "portal_user")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *FileStoreSuite) TestWritesLeaveNoTempFiles() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("1")))
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("2")))

	entries, err := os.ReadDir(s.store.Dir())
	s.Require().NoError(err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	s.ElementsMatch([]string{"k.json", lockFile}, names)

	info, err := os.Stat(filepath.Join(s.store.Dir(), "k.json"))
	s.Require().NoError(err)
	s.Equal(os.FileMode(fileMode), info.Mode().Perm())
}

func (s *FileStoreSuite) TestRejectsPathLikeKeys() {
	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		err := s.store.Set(s.ctx, key, []byte("x"))
		s.Require().Error(err, key)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), key)
	}
}

func (s *FileStoreSuite) TestHeldLockReportsUnavailable() {
	other := flock.New(filepath.Join(s.store.Dir(), lockFile))
	locked, err := other.TryLock()
	s.Require().NoError(err)
	s.Require().True(locked)
	defer func() { _ = other.Unlock() }()

	ctx, cancel := context.WithTimeout(s.ctx, 100*time.Millisecond)
	defer cancel()

	_, err = s.store.Get(ctx, "k")
	s.Require().ErrorIs(err, sentinel.ErrUnavailable)
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New("")
	if !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
