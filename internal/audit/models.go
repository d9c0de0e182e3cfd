package audit

import (
	"time"

	id "portal/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategorySecurity covers failed logins and session teardown.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity such as logins and profile edits.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category   EventCategory
	Timestamp  time.Time
	IdentityID id.IdentityID
	// Subject is the domain account the action concerns. It is recorded even
	// for failed logins where no identity is known. Secrets never appear here.
	Subject   string
	Action    string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventLoginSucceeded   AuditEvent = "login_succeeded"
	EventAuthFailed       AuditEvent = "auth_failed"
	EventSessionRestored  AuditEvent = "session_restored"
	EventSessionCleared   AuditEvent = "session_cleared"
	EventProfileCompleted AuditEvent = "profile_completed"
	EventProfileRejected  AuditEvent = "profile_rejected"
	EventReferenceChanged AuditEvent = "reference_changed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAuthFailed:      CategorySecurity,
	EventSessionCleared:  CategorySecurity,
	EventProfileRejected: CategorySecurity,
}

// CategoryOf returns the category for an event, defaulting to operations.
func CategoryOf(e AuditEvent) EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}
