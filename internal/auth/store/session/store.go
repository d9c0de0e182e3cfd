// Package session holds the single source of truth for who is logged in, and
// persists that identity so a restarted shell picks the session back up.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"portal/internal/auth/models"
	"portal/internal/platform/logger"
	"portal/internal/platform/metrics"
	"portal/internal/storage"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/sentinel"
)

// DefaultKey is the well-known key the session record is stored under.
const DefaultKey = "portal_user"

// Store keeps the current identity in memory and mirrors it into storage.
// The in-memory value only changes after the backing write succeeded, so a
// failed Save leaves the previous identity observable.
type Store struct {
	backend storage.Store
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	current *models.Identity
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New constructs a Store over backend.
func New(backend storage.Store, opts ...Option) *Store {
	s := &Store{backend: backend, key: DefaultKey, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted identity, if any, and makes it current.
// Empty storage, unreadable storage and malformed records all read as "no
// session"; the reason is logged, never returned.
func (s *Store) Restore(ctx context.Context) (*models.Identity, bool) {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementSessionRestore(metrics.ResultEmpty)
		} else {
			s.metrics.IncrementSessionRestore(metrics.ResultUnavailable)
			s.logger.WarnContext(ctx, "session storage unreadable, starting unauthenticated", "error", err)
		}
		s.setCurrent(nil)
		return nil, false
	}

	identity, err := decode(raw)
	if err != nil {
		s.metrics.IncrementSessionRestore(metrics.ResultCorrupt)
		s.logger.WarnContext(ctx, "discarding malformed session record", "error", err)
		s.setCurrent(nil)
		return nil, false
	}

	s.metrics.IncrementSessionRestore(metrics.ResultSuccess)
	s.setCurrent(identity)
	return identity.Clone(), true
}

// Save overwrites the persisted record with identity and makes it current.
func (s *Store) Save(ctx context.Context, identity *models.Identity) error {
	if identity == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "identity is required")
	}
	if err := identity.Validate(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "identity cannot be stored")
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode session record")
	}
	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session", "identity_id", identity.ID.String(), "error", err)
		return dErrors.Wrap(err, dErrors.CodePersistence, "could not save session")
	}
	s.setCurrent(identity.Clone())
	return nil
}

// Clear forgets the current identity and removes the persisted record.
// It is idempotent. The in-memory identity is dropped even when the backend
// delete fails, so logout always takes effect for this process.
func (s *Store) Clear(ctx context.Context) error {
	s.setCurrent(nil)
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to remove persisted session", "error", err)
		return dErrors.Wrap(err, dErrors.CodePersistence, "could not remove session")
	}
	return nil
}

// Current returns a copy of the current identity.
func (s *Store) Current() (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

func (s *Store) setCurrent(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = identity
}

func decode(raw []byte) (*models.Identity, error) {
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, err
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return &identity, nil
}
