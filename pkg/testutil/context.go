package testutil

import (
	"context"
	"time"

	id "portal/pkg/domain"
	"portal/pkg/requestcontext"
)

// FixedTime is the clock reading stamped by Context.
var FixedTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// RequestID is the request id stamped by Context.
const RequestID = "req-test"

// Context returns a context carrying the given identity, RequestID and
// FixedTime, the way the CLI prepares one per invocation. An empty identity
// leaves the context anonymous.
func Context(identityID id.IdentityID) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), RequestID)
	ctx = requestcontext.WithTime(ctx, FixedTime)
	if !identityID.IsZero() {
		ctx = requestcontext.WithIdentityID(ctx, identityID)
	}
	return ctx
}
