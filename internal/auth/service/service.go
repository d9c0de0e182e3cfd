// Package service is the authentication and first-login gate. It owns the
// transitions Unauthenticated -> PendingProfile -> Active and back to
// Unauthenticated on logout.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"portal/internal/audit"
	"portal/internal/auth/models"
	"portal/internal/auth/profile"
	"portal/internal/platform/logger"
	"portal/internal/platform/metrics"
	dErrors "portal/pkg/domain-errors"
)

// Authenticator checks credentials without side effects.
type Authenticator interface {
	Authenticate(ctx context.Context, domainAccount, secret string) (*models.Identity, error)
}

// SessionStore holds the current identity and persists it.
type SessionStore interface {
	Restore(ctx context.Context) (*models.Identity, bool)
	Save(ctx context.Context, identity *models.Identity) error
	Clear(ctx context.Context) error
	Current() (*models.Identity, bool)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// State is the gate position derived from the current session.
type State int

const (
	StateUnauthenticated State = iota
	StatePendingProfile
	StateActive
)

func (s State) String() string {
	switch s {
	case StatePendingProfile:
		return "pending_profile"
	case StateActive:
		return "active"
	default:
		return "unauthenticated"
	}
}

// StateOf maps an identity to its gate state. A nil identity is unauthenticated.
func StateOf(identity *models.Identity) State {
	switch {
	case identity == nil:
		return StateUnauthenticated
	case identity.FirstLoginPending:
		return StatePendingProfile
	default:
		return StateActive
	}
}

// Service runs the gate. It keeps no state of its own: the session store is
// the single source of truth, so State always agrees with Current.
type Service struct {
	auth           Authenticator
	sessions       SessionStore
	refs           profile.References
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithReferences enables existence checks for the organizational ids on the
// first-login form.
func WithReferences(refs profile.References) Option {
	return func(s *Service) {
		s.refs = refs
	}
}

// New constructs a Service.
func New(auth Authenticator, sessions SessionStore, opts ...Option) (*Service, error) {
	if auth == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "authenticator is required")
	}
	if sessions == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "session store is required")
	}
	s := &Service{
		auth:     auth,
		sessions: sessions,
		logger:   logger.Discard(),
		tracer:   otel.Tracer("portal/auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start restores a persisted session, if any, and reports the resulting state.
func (s *Service) Start(ctx context.Context) State {
	ctx, span := s.tracer.Start(ctx, "auth.Start")
	defer span.End()

	identity, ok := s.sessions.Restore(ctx)
	if !ok {
		return StateUnauthenticated
	}
	s.logAudit(ctx, audit.EventSessionRestored, identity, "")
	return StateOf(identity)
}

// State reports the current gate state.
func (s *Service) State() State {
	identity, _ := s.sessions.Current()
	return StateOf(identity)
}

// Current returns a copy of the logged-in identity.
func (s *Service) Current() (*models.Identity, bool) {
	return s.sessions.Current()
}

// Logout clears the session from any state. The in-memory session is gone
// even when removing the persisted record fails.
func (s *Service) Logout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "auth.Logout")
	defer span.End()

	identity, _ := s.sessions.Current()
	if err := s.sessions.Clear(ctx); err != nil {
		span.RecordError(err)
		return persistenceError(err, "could not remove session")
	}
	if identity != nil {
		s.logAudit(ctx, audit.EventSessionCleared, identity, "logout")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.AuditEvent, identity *models.Identity, reason string) {
	if s.auditPublisher == nil {
		return
	}
	audit.LogEmit(ctx, s.logger, s.auditPublisher, action, identity.ID, identity.DomainAccount, reason)
}

func persistenceError(err error, msg string) error {
	if dErrors.HasCode(err, dErrors.CodePersistence) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodePersistence, msg)
}
