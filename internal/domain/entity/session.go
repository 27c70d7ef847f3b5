// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds one issued access token to its owning actor. A row is
// inserted on every successful login and never updated afterwards, except
// for the IsActive flag (soft revoke) or full deletion when the owner is
// removed (hard revoke).
//
// AccessToken holds the literal signed token string, so session validity is
// always checked by exact-string lookup, never by decoding. Expiry is
// enforced solely by the token's own signed expiry claim; there is no sweep
// over session rows.
type Session struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        ActorKind
	AccessToken string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner carries the populated actor when a lookup requests it.
	// Exactly one of the two is non-nil depending on Kind.
	AdminOwner  *AdminUser
	PlayerOwner *Player
}
