// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the single password record owned by an actor. It is created
// at signup, overwritten in place on password change, and deleted together
// with its owner. An actor without a credential can never authenticate by
// password.
type Credential struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID // The admin user or player this credential belongs to.
	Kind         ActorKind
	PasswordHash string // bcrypt hash; never exposed outside the credential store.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
