// Package requestcontext provides context accessors for values scoped to one
// shell command (one "request" against the portal core).
//
// The shell stamps a command ID and a fixed "now" before calling into the core;
// services read them back for audit events and log correlation:
//
//	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
//	ctx = requestcontext.WithTime(ctx, time.Now())
//
// Tests inject a fixed time the same way.
package requestcontext

import (
	"context"
	"time"

	id "portal/pkg/domain"
)

type (
	identityIDKey  struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyIdentityID  = identityIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// IdentityID retrieves the acting identity from the context.
// Returns the zero value if not set.
func IdentityID(ctx context.Context) id.IdentityID {
	if v, ok := ctx.Value(ContextKeyIdentityID).(id.IdentityID); ok {
		return v
	}
	return ""
}

// WithIdentityID injects the acting identity into the context.
func WithIdentityID(ctx context.Context, identityID id.IdentityID) context.Context {
	return context.WithValue(ctx, ContextKeyIdentityID, identityID)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
