package audit

import (
	"context"
	"log/slog"

	id "portal/pkg/domain"
	"portal/pkg/requestcontext"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is the publishing side consumed by services.
type Emitter interface {
	Emit(ctx context.Context, base Event) error
}

// Publisher captures structured audit events. It is append-only and fills
// timestamp, category, and request correlation from the context.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	if base.Category == "" {
		base.Category = CategoryOf(AuditEvent(base.Action))
	}
	if base.RequestID == "" {
		base.RequestID = requestcontext.RequestID(ctx)
	}
	return p.store.Append(ctx, base)
}

// LogStore writes events to a structured logger. It is the default sink for
// the shell, where there is no audit database.
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) Append(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "audit",
		"category", string(e.Category),
		"action", e.Action,
		"identity_id", e.IdentityID.String(),
		"subject", e.Subject,
		"reason", e.Reason,
		"request_id", e.RequestID,
		"timestamp", e.Timestamp,
	)
	return nil
}

// LogEmit emits an event and logs, rather than returns, a publisher failure.
// Audit must never turn a successful user action into an error.
func LogEmit(ctx context.Context, logger *slog.Logger, publisher Emitter, action AuditEvent, identityID id.IdentityID, subject, reason string) {
	if publisher == nil {
		return
	}
	err := publisher.Emit(ctx, Event{
		IdentityID: identityID,
		Subject:    subject,
		Action:     string(action),
		Reason:     reason,
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "action", string(action), "error", err)
	}
}
