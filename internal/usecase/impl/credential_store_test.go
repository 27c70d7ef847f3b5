package impl

import (
	"context"
	"testing"

	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_SaveAndVerify(t *testing.T) {
	repo := newFakeCredentialRepo()
	store := NewCredentialStore(repo, &fakeHasher{}, entity.KindAdmin)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, store.Save(ctx, ownerID, "secret123"))

	cred, err := repo.FindByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, entity.KindAdmin, cred.Kind)
	assert.NotEqual(t, "secret123", cred.PasswordHash)

	assert.NoError(t, store.Verify(ctx, ownerID, "secret123"))
	assert.ErrorIs(t, store.Verify(ctx, ownerID, "wrong"), domainerrors.ErrInvalidCredentials)
}

func TestCredentialStore_Save_Conflict(t *testing.T) {
	repo := newFakeCredentialRepo()
	store := NewCredentialStore(repo, &fakeHasher{}, entity.KindPlayer)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, store.Save(ctx, ownerID, "secret123"))

	err := store.Save(ctx, ownerID, "other456")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCredentialStore_Verify_NoCredential(t *testing.T) {
	store := NewCredentialStore(newFakeCredentialRepo(), &fakeHasher{}, entity.KindPlayer)

	err := store.Verify(context.Background(), uuid.New(), "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrNoCredentials)
}

func TestCredentialStore_Reset_OverwritesInPlace(t *testing.T) {
	repo := newFakeCredentialRepo()
	store := NewCredentialStore(repo, &fakeHasher{}, entity.KindAdmin)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, store.Save(ctx, ownerID, "old-secret"))
	require.NoError(t, store.Reset(ctx, ownerID, "new-secret"))

	assert.ErrorIs(t, store.Verify(ctx, ownerID, "old-secret"), domainerrors.ErrInvalidCredentials)
	assert.NoError(t, store.Verify(ctx, ownerID, "new-secret"))

	// Reset also creates the credential when none exists yet.
	otherID := uuid.New()
	require.NoError(t, store.Reset(ctx, otherID, "fresh"))
	assert.NoError(t, store.Verify(ctx, otherID, "fresh"))
}

func TestCredentialStore_Remove_Idempotent(t *testing.T) {
	repo := newFakeCredentialRepo()
	store := NewCredentialStore(repo, &fakeHasher{}, entity.KindAdmin)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, store.Save(ctx, ownerID, "secret123"))
	require.NoError(t, store.Remove(ctx, ownerID))
	require.NoError(t, store.Remove(ctx, ownerID))

	assert.ErrorIs(t, store.Verify(ctx, ownerID, "secret123"), domainerrors.ErrNoCredentials)
}
