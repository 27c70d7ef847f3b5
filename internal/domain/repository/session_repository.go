package repository

import (
	"context"
	"errors"

	"courtside/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session row exists for a lookup.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists one row per successful login. Instances are
// scoped to a single actor kind (admin sessions and player sessions live in
// separate collections).
//
// Create is always an insert, never an update in place, so concurrent logins
// for the same actor need no locking; each login produces its own row.
type SessionRepository interface {
	// Create persists a new session row for an issued token.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by exact token string.
	FindByToken(ctx context.Context, accessToken string) (*entity.Session, error)

	// FindByTokenAndOwner retrieves a session matching both the exact token
	// string and the owning actor ID.
	FindByTokenAndOwner(ctx context.Context, accessToken string, ownerID uuid.UUID) (*entity.Session, error)

	// DeactivateByOwner flips is_active to false on all of the owner's
	// sessions (soft revoke). Revoking an owner with no sessions is a no-op.
	DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) error

	// DeleteByOwner removes all of the owner's sessions (hard revoke on
	// actor removal).
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
