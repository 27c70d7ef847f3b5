package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CredentialStore hides hashing behind a small write/verify surface.
// Implementations are scoped to a single actor kind; the owner ID alone
// identifies the credential.
type CredentialStore interface {
	// Save creates the credential for a new owner. Fails with a conflict
	// when one already exists.
	Save(ctx context.Context, ownerID uuid.UUID, password string) error

	// Reset overwrites the credential in place, creating it if absent.
	Reset(ctx context.Context, ownerID uuid.UUID, password string) error

	// Verify checks a plaintext password against the stored hash. A missing
	// credential and a mismatched password are distinct errors so callers
	// can log the difference while presenting the same response.
	Verify(ctx context.Context, ownerID uuid.UUID, password string) error

	// Remove deletes the owner's credential. Removing a missing credential
	// is not an error.
	Remove(ctx context.Context, ownerID uuid.UUID) error
}
