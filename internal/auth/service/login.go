package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"portal/internal/audit"
	"portal/internal/auth/models"
	"portal/internal/platform/metrics"
	dErrors "portal/pkg/domain-errors"
)

var errCredentialsRequired = dErrors.New(dErrors.CodeValidation, "domain account and password are required")

// Login checks the credentials and, on success, makes the identity current.
// The resulting state is PendingProfile or Active depending on the stored
// first-login flag. A failed check or a failed save leaves the session as it
// was.
func (s *Service) Login(ctx context.Context, domainAccount, secret string) (*models.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer span.End()
	start := time.Now()

	if strings.TrimSpace(domainAccount) == "" || secret == "" {
		s.metrics.ObserveAuth(metrics.ResultInvalid, start)
		return nil, errCredentialsRequired
	}

	identity, err := s.auth.Authenticate(ctx, domainAccount, secret)
	if err != nil {
		span.RecordError(err)
		switch {
		case dErrors.HasCode(err, dErrors.CodeUnauthorized):
			s.metrics.ObserveAuth(metrics.ResultFailure, start)
			if s.auditPublisher != nil {
				audit.LogEmit(ctx, s.logger, s.auditPublisher, audit.EventAuthFailed, "", domainAccount, "invalid_credentials")
			}
			return nil, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.metrics.ObserveAuth(metrics.ResultError, start)
			return nil, err
		default:
			s.metrics.ObserveAuth(metrics.ResultError, start)
			s.logger.ErrorContext(ctx, "credential check failed", "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "credential check failed")
		}
	}

	if err := s.sessions.Save(ctx, identity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session save failed")
		s.metrics.ObserveAuth(metrics.ResultError, start)
		return nil, persistenceError(err, "could not save session")
	}

	state := StateOf(identity)
	span.SetAttributes(
		attribute.String("identity.id", identity.ID.String()),
		attribute.String("auth.state", state.String()),
	)
	s.metrics.ObserveAuth(metrics.ResultSuccess, start)
	s.logAudit(ctx, audit.EventLoginSucceeded, identity, "")
	s.logger.InfoContext(ctx, "login succeeded", "identity_id", identity.ID.String(), "state", state.String())
	return identity.Clone(), nil
}
