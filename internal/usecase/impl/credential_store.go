// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/repository"
	"courtside/internal/domain/service"
	"courtside/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// credentialStore implements usecase.CredentialStore on top of a kind-scoped
// credential repository. It is the only place plaintext passwords meet
// stored hashes; orchestrators above it never see hash material.
type credentialStore struct {
	repo   repository.CredentialRepository
	hasher service.PasswordHasher
	kind   entity.ActorKind
}

// NewCredentialStore builds a store for one actor kind. Orchestrators also
// construct throwaway instances inside transactions, from transaction-bound
// repositories, so credential writes stay atomic with their actor writes.
func NewCredentialStore(repo repository.CredentialRepository, hasher service.PasswordHasher, kind entity.ActorKind) usecase.CredentialStore {
	return &credentialStore{
		repo:   repo,
		hasher: hasher,
		kind:   kind,
	}
}

// Save hashes the password and creates the owner's credential record.
func (s *credentialStore) Save(ctx context.Context, ownerID uuid.UUID, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	cred := &entity.Credential{
		OwnerID:      ownerID,
		Kind:         s.kind,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrCredentialExists) {
			return errors.Wrap(domainerrors.ErrConflict, "credential already exists for owner")
		}

		return errors.Wrap(err, "failed to create credential")
	}

	return nil
}

// Reset hashes the password and overwrites the owner's credential in place.
func (s *credentialStore) Reset(ctx context.Context, ownerID uuid.UUID, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	cred := &entity.Credential{
		OwnerID:      ownerID,
		Kind:         s.kind,
		PasswordHash: hash,
	}

	if err := s.repo.Upsert(ctx, cred); err != nil {
		return errors.Wrap(err, "failed to upsert credential")
	}

	return nil
}

// Verify checks the plaintext password against the stored hash. A missing
// credential and a wrong password come back as distinct domain errors.
func (s *credentialStore) Verify(ctx context.Context, ownerID uuid.UUID, password string) error {
	cred, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return errors.Wrap(domainerrors.ErrNoCredentials, "no credential stored for owner")
		}

		return errors.Wrap(err, "failed to load credential")
	}

	if !s.hasher.Check(password, cred.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	return nil
}

// Remove deletes the owner's credential. Deleting a missing credential is
// not an error.
func (s *credentialStore) Remove(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.DeleteByOwner(ctx, ownerID); err != nil {
		return errors.Wrap(err, "failed to delete credential")
	}

	return nil
}
