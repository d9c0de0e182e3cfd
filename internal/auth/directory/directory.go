// Package directory checks domain account credentials against a fixed,
// read-only set of identities.
package directory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"portal/internal/auth/models"
	"portal/internal/platform/logger"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/secrets"
)

// ErrInvalidCredentials is returned for an unknown account and for a wrong
// secret alike.
var ErrInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

// Authenticator resolves a (domain account, secret) pair to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, domainAccount, secret string) (*models.Identity, error)
}

// Entry is one directory record: the identity plus the bcrypt hash of its secret.
type Entry struct {
	Identity   models.Identity
	SecretHash string
}

// Static is an immutable in-memory directory.
type Static struct {
	entries   map[string]Entry
	dummyHash string
	latency   time.Duration
	logger    *slog.Logger
}

type Option func(*Static)

// WithLatency delays every Authenticate call by d. The wait is cut short
// when the caller's context is done.
func WithLatency(d time.Duration) Option {
	return func(s *Static) {
		s.latency = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Static) {
		s.logger = logger
	}
}

// New builds a Static directory. Domain accounts must be unique and every
// entry must carry a valid identity and a secret hash.
func New(entries []Entry, opts ...Option) (*Static, error) {
	s := &Static{
		entries: make(map[string]Entry, len(entries)),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cost := 0
	for _, e := range entries {
		if err := e.Identity.Validate(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid directory entry")
		}
		if e.SecretHash == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "directory entry "+e.Identity.DomainAccount+" has no secret")
		}
		if _, dup := s.entries[e.Identity.DomainAccount]; dup {
			return nil, dErrors.New(dErrors.CodeConflict, "duplicate domain account "+e.Identity.DomainAccount)
		}
		s.entries[e.Identity.DomainAccount] = e
		if cost == 0 {
			cost = secrets.Cost(e.SecretHash)
		}
	}

	if cost == 0 {
		cost = secrets.Cost("")
	}
	dummy, err := secrets.Generate()
	if err != nil {
		return nil, err
	}
	s.dummyHash, err = secrets.HashWithCost(dummy, cost)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Authenticate returns a copy of the identity registered under domainAccount
// when secret matches. Account lookup is exact and case-sensitive. Unknown
// accounts still pay for one hash comparison so both failures look alike.
func (s *Static) Authenticate(ctx context.Context, domainAccount, secret string) (*models.Identity, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	entry, ok := s.entries[domainAccount]
	if !ok {
		_ = secrets.Verify(secret, s.dummyHash)
		s.logger.DebugContext(ctx, "authentication rejected", "reason", "unknown_account")
		return nil, ErrInvalidCredentials
	}

	if err := secrets.Verify(secret, entry.SecretHash); err != nil {
		if !errors.Is(err, secrets.ErrMismatch) {
			s.logger.ErrorContext(ctx, "secret verification failed", "identity_id", entry.Identity.ID.String(), "error", err)
		}
		s.logger.DebugContext(ctx, "authentication rejected", "reason", "secret_mismatch")
		return nil, ErrInvalidCredentials
	}

	return entry.Identity.Clone(), nil
}

// Len reports the number of registered accounts.
func (s *Static) Len() int {
	return len(s.entries)
}

func (s *Static) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
