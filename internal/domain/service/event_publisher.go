package service

import (
	"context"
	"time"
)

// Auth event names published to the audit stream.
const (
	EventSignup       = "signup"
	EventLogin        = "login"
	EventLogout       = "logout"
	EventActorDeleted = "actor_deleted"
)

// AuthEvent is the audit record emitted after authentication state changes.
type AuthEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	ActorID    string    `json:"actor_id"`
	ActorKind  string    `json:"actor_kind"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing auth events to a
// message queue. Publishing is always best-effort: callers log failures and
// never fail the originating operation.
type EventPublisher interface {
	// PublishAuthEvent publishes an auth event for async consumers.
	PublishAuthEvent(ctx context.Context, event *AuthEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
