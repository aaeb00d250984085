package domain

import (
	"context"

	"github.com/google/uuid"
)

// invocationIDKey is an unexported type to prevent collisions with context keys from other packages.
type invocationIDKey struct{}

// NewInvocationID returns a fresh identifier for one build step execution.
func NewInvocationID() string {
	return uuid.NewString()
}

// WithInvocationID returns a new context carrying id.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey{}, id)
}

// InvocationIDFromContext returns the invocation id stored in ctx, or "" if none.
func InvocationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey{}).(string)
	return id
}
