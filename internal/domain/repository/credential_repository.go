package repository

import (
	"context"
	"errors"

	"courtside/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when an actor has no stored credential.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrCredentialExists is returned by Create when the actor already has a
// credential row. Password-reset paths use Upsert instead.
var ErrCredentialExists = errors.New("credential already exists")

// CredentialRepository persists one password hash per actor. Instances are
// scoped to a single actor kind; the kind on the entity must match.
type CredentialRepository interface {
	// FindByOwner retrieves the credential for the given actor.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Credential, error)

	// Create persists a new credential. Fails with ErrCredentialExists when
	// the owner already has one.
	Create(ctx context.Context, cred *entity.Credential) error

	// Upsert creates or overwrites the owner's credential in place.
	Upsert(ctx context.Context, cred *entity.Credential) error

	// DeleteByOwner removes the owner's credential, if any.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
