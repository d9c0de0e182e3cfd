package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"portal/internal/audit"
	"portal/internal/auth/models"
	"portal/internal/auth/profile"
	"portal/internal/platform/metrics"
	dErrors "portal/pkg/domain-errors"
)

// ValidateProfile reports field errors for form without changing anything.
func (s *Service) ValidateProfile(ctx context.Context, form models.ProfileForm) models.FieldErrors {
	return profile.Validate(ctx, form, s.refs)
}

// SubmitProfile commits a first-login profile. It is only accepted in
// PendingProfile. An invalid form returns *profile.ValidationError and leaves
// the identity untouched; a failed save returns a persistence error and the
// current identity stays the pre-merge value.
func (s *Service) SubmitProfile(ctx context.Context, form models.ProfileForm) (*models.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "auth.SubmitProfile")
	defer span.End()

	current, ok := s.sessions.Current()
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "not logged in")
	}
	if !current.FirstLoginPending {
		return nil, dErrors.New(dErrors.CodeInvalidState, "profile already completed")
	}

	form = profile.Normalize(form)
	if errs := profile.Validate(ctx, form, s.refs); len(errs) > 0 {
		s.metrics.IncrementProfileSubmission(metrics.ResultInvalid)
		fields := make([]string, 0, len(errs))
		for _, f := range errs.Fields() {
			fields = append(fields, string(f))
		}
		span.SetAttributes(attribute.StringSlice("profile.invalid_fields", fields))
		s.logAudit(ctx, audit.EventProfileRejected, current, strings.Join(fields, ","))
		return nil, &profile.ValidationError{Fields: errs}
	}

	next := models.ApplyProfile(current, form)
	if err := s.sessions.Save(ctx, next); err != nil {
		span.RecordError(err)
		s.metrics.IncrementProfileSubmission(metrics.ResultError)
		return nil, persistenceError(err, "could not save profile")
	}

	s.metrics.IncrementProfileSubmission(metrics.ResultSuccess)
	s.logAudit(ctx, audit.EventProfileCompleted, next, "")
	s.logger.InfoContext(ctx, "profile completed", "identity_id", next.ID.String())
	return next.Clone(), nil
}
