package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"portal/internal/auth/models"
	"portal/internal/platform/metrics"
	"portal/internal/storage"
	"portal/internal/storage/file"
	"portal/internal/storage/sqlite"
	dErrors "portal/pkg/domain-errors"
)

// flakyBackend wraps an in-memory store and fails selected operations.
type flakyBackend struct {
	*storage.InMemory
	failGet, failSet, failDelete bool
}

var errDiskFull = errors.New("quota exceeded")

func (b *flakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if b.failGet {
		return nil, errDiskFull
	}
	return b.InMemory.Get(ctx, key)
}

func (b *flakyBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.failSet {
		return errDiskFull
	}
	return b.InMemory.Set(ctx, key, value)
}

func (b *flakyBackend) Delete(ctx context.Context, key string) error {
	if b.failDelete {
		return errDiskFull
	}
	return b.InMemory.Delete(ctx, key)
}

func newIdentity() *models.Identity {
	return &models.Identity{
		ID:                "user1",
		DomainAccount:     "ivanov@gov27.ru",
		FullName:          models.FullName{FirstName: "Иван", LastName: "Иванов", MiddleName: "Иванович"},
		Assignment:        models.Assignment{Ministry: "1", Department: "1", Position: "2", Address: "1"},
		Contacts:          models.Contacts{OfficeNumber: "201", PhoneNumber: "+7 (4212) 12-34-57", InternalPhone: "1235", Email: "ivanov@gov27.ru"},
		Role:              models.RoleUser,
		FirstLoginPending: true,
	}
}

type SessionStoreSuite struct {
	suite.Suite
	backend *flakyBackend
	metrics *metrics.Metrics
	store   *Store
	ctx     context.Context
}

func (s *SessionStoreSuite) SetupTest() {
	s.backend = &flakyBackend{InMemory: storage.NewInMemory()}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.store = New(s.backend, WithMetrics(s.metrics))
	s.ctx = context.Background()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

// reopen simulates a process restart over the same backing storage.
func (s *SessionStoreSuite) reopen() *Store {
	return New(s.backend, WithMetrics(s.metrics))
}

func (s *SessionStoreSuite) TestRestore() {
	s.Run("empty storage means no session", func() {
		identity, ok := s.store.Restore(s.ctx)
		s.False(ok)
		s.Nil(identity)
		_, ok = s.store.Current()
		s.False(ok)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.SessionRestores.WithLabelValues(metrics.ResultEmpty)))
	})

	s.Run("returns what a previous process saved", func() {
		saved := newIdentity()
		s.Require().NoError(s.store.Save(s.ctx, saved))

		restored, ok := s.reopen().Restore(s.ctx)
		s.Require().True(ok)
		s.Equal(saved, restored)
	})

	s.Run("unreadable storage means no session", func() {
		s.backend.failGet = true
		defer func() { s.backend.failGet = false }()

		store := s.reopen()
		identity, ok := store.Restore(s.ctx)
		s.False(ok)
		s.Nil(identity)
	})
}

func (s *SessionStoreSuite) TestRestoreCorruptRecords() {
	cases := map[string]string{
		"not json":          `{{{`,
		"json array":        `[1,2,3]`,
		"json null":         `null`,
		"missing id":        `{"domain":"a@b.ru","role":"user"}`,
		"missing domain":    `{"id":"x","role":"user"}`,
		"unknown role":      `{"id":"x","domain":"a@b.ru","role":"root"}`,
		"wrong field types": `{"id":"x","domain":"a@b.ru","role":"user","isFirstLogin":"yes"}`,
		"truncated":         `{"id":"x","domain":"a@b`,
	}
	for name, raw := range cases {
		s.Run(name, func() {
			s.Require().NoError(s.backend.Set(s.ctx, DefaultKey, []byte(raw)))
			identity, ok := s.reopen().Restore(s.ctx)
			s.False(ok)
			s.Nil(identity)
		})
	}
	s.Equal(float64(len(cases)), testutil.ToFloat64(s.metrics.SessionRestores.WithLabelValues(metrics.ResultCorrupt)))
}

func (s *SessionStoreSuite) TestSave() {
	s.Run("makes the identity current", func() {
		identity := newIdentity()
		s.Require().NoError(s.store.Save(s.ctx, identity))

		current, ok := s.store.Current()
		s.Require().True(ok)
		s.Equal(identity, current)
	})

	s.Run("stores a snapshot, not a reference", func() {
		identity := newIdentity()
		s.Require().NoError(s.store.Save(s.ctx, identity))
		identity.Email = "changed@gov27.ru"

		current, _ := s.store.Current()
		s.Equal("ivanov@gov27.ru", current.Email)

		current.Email = "mutated@gov27.ru"
		again, _ := s.store.Current()
		s.Equal("ivanov@gov27.ru", again.Email)
	})

	s.Run("failed write keeps the previous identity", func() {
		before := newIdentity()
		s.Require().NoError(s.store.Save(s.ctx, before))

		s.backend.failSet = true
		defer func() { s.backend.failSet = false }()

		next := newIdentity()
		next.FirstLoginPending = false
		err := s.store.Save(s.ctx, next)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePersistence))

		current, ok := s.store.Current()
		s.Require().True(ok)
		s.True(current.FirstLoginPending)
	})

	s.Run("rejects identities restore would discard", func() {
		before := newIdentity()
		s.Require().NoError(s.store.Save(s.ctx, before))

		blankID := newIdentity()
		blankID.ID = ""
		brokenText := newIdentity()
		brokenText.FirstName = "\xffИван"

		for _, bad := range []*models.Identity{blankID, brokenText} {
			err := s.store.Save(s.ctx, bad)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

			current, ok := s.store.Current()
			s.Require().True(ok)
			s.Equal(before, current)

			restored, ok := s.reopen().Restore(s.ctx)
			s.Require().True(ok)
			s.Equal(before, restored)
		}
	})

	s.Run("non-ASCII text restores unchanged", func() {
		saved := newIdentity()
		saved.FirstName = "Ёжик «Пётр» 😀"
		saved.OfficeNumber = "каб. 3-Б"
		s.Require().NoError(s.store.Save(s.ctx, saved))

		restored, ok := s.reopen().Restore(s.ctx)
		s.Require().True(ok)
		s.Equal(saved, restored)
	})

	s.Run("rejects nil identity", func() {
		err := s.store.Save(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("empty key keeps the default", func() {
		store := New(s.backend, WithKey(""))
		s.Require().NoError(store.Save(s.ctx, newIdentity()))
		_, err := s.backend.Get(s.ctx, DefaultKey)
		s.Require().NoError(err)
	})

	s.Run("honors a custom key", func() {
		store := New(s.backend, WithKey("kiosk_user"))
		s.Require().NoError(store.Save(s.ctx, newIdentity()))
		_, err := s.backend.Get(s.ctx, "kiosk_user")
		s.Require().NoError(err)
	})
}

func (s *SessionStoreSuite) TestClear() {
	s.Run("removes current and persisted identity", func() {
		s.Require().NoError(s.store.Save(s.ctx, newIdentity()))
		s.Require().NoError(s.store.Clear(s.ctx))

		_, ok := s.store.Current()
		s.False(ok)
		_, ok = s.reopen().Restore(s.ctx)
		s.False(ok)
	})

	s.Run("is idempotent", func() {
		s.Require().NoError(s.store.Clear(s.ctx))
		s.Require().NoError(s.store.Clear(s.ctx))
	})

	s.Run("drops in-memory identity even when delete fails", func() {
		s.Require().NoError(s.store.Save(s.ctx, newIdentity()))
		s.backend.failDelete = true
		defer func() { s.backend.failDelete = false }()

		err := s.store.Clear(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodePersistence))
		_, ok := s.store.Current()
		s.False(ok)
	})
}

// TestDurableBackends checks save/restore across a simulated restart for the
// on-disk backends the shell ships with.
func TestDurableBackends(t *testing.T) {
	ctx := context.Background()

	fileBackend, err := file.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sqliteBackend, err := sqlite.Open(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqliteBackend.Close() })

	backends := map[string]storage.Store{
		"file":   fileBackend,
		"sqlite": sqliteBackend,
	}
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			saved := newIdentity()
			if err := New(backend).Save(ctx, saved); err != nil {
				t.Fatalf("save: %v", err)
			}

			restored, ok := New(backend).Restore(ctx)
			if !ok {
				t.Fatal("expected restored session")
			}
			if *restored != *saved {
				t.Fatalf("restored %+v, want %+v", restored, saved)
			}

			if err := New(backend).Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok := New(backend).Restore(ctx); ok {
				t.Fatal("expected no session after clear")
			}
		})
	}
}
