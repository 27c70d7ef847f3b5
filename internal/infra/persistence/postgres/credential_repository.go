package postgres

import (
	"context"
	"time"

	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/repository"
	"courtside/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsert conflict target: one credential row per owner.
var credentialConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "owner_id"}},
	DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
}

// adminCredentialRepository implements CredentialRepository over the
// admin_credentials table.
type adminCredentialRepository struct {
	db *gorm.DB
}

// NewAdminCredentialRepository is the constructor for adminCredentialRepository.
func NewAdminCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &adminCredentialRepository{db: db}
}

// FindByOwner retrieves the admin credential for the given owner.
func (repo *adminCredentialRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Credential, error) {
	var credM model.AdminCredentialModel
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&credM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.Credential{
		ID:           credM.ID,
		OwnerID:      credM.OwnerID,
		Kind:         entity.KindAdmin,
		PasswordHash: credM.PasswordHash,
		CreatedAt:    credM.CreatedAt,
		UpdatedAt:    credM.UpdatedAt,
	}, nil
}

// Create persists a new admin credential.
func (repo *adminCredentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	credM := &model.AdminCredentialModel{
		ID:           cred.ID,
		OwnerID:      cred.OwnerID,
		PasswordHash: cred.PasswordHash,
	}

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCredentialExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrActorNotFound.WrapMessage("credential owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin credential")
	}

	cred.ID = credM.ID
	cred.CreatedAt = credM.CreatedAt
	cred.UpdatedAt = credM.UpdatedAt

	return nil
}

// Upsert creates or overwrites the owner's admin credential in place.
func (repo *adminCredentialRepository) Upsert(ctx context.Context, cred *entity.Credential) error {
	credM := &model.AdminCredentialModel{
		ID:           cred.ID,
		OwnerID:      cred.OwnerID,
		PasswordHash: cred.PasswordHash,
		UpdatedAt:    time.Now(),
	}

	if err := repo.db.WithContext(ctx).Clauses(credentialConflict).Create(credM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert admin credential")
	}

	return nil
}

// DeleteByOwner removes the owner's admin credential, if any.
func (repo *adminCredentialRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.AdminCredentialModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete admin credential")
	}

	return nil
}

// playerCredentialRepository implements CredentialRepository over the
// player_credentials table.
type playerCredentialRepository struct {
	db *gorm.DB
}

// NewPlayerCredentialRepository is the constructor for playerCredentialRepository.
func NewPlayerCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &playerCredentialRepository{db: db}
}

// FindByOwner retrieves the player credential for the given owner.
func (repo *playerCredentialRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Credential, error) {
	var credM model.PlayerCredentialModel
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&credM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.Credential{
		ID:           credM.ID,
		OwnerID:      credM.OwnerID,
		Kind:         entity.KindPlayer,
		PasswordHash: credM.PasswordHash,
		CreatedAt:    credM.CreatedAt,
		UpdatedAt:    credM.UpdatedAt,
	}, nil
}

// Create persists a new player credential.
func (repo *playerCredentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	credM := &model.PlayerCredentialModel{
		ID:           cred.ID,
		OwnerID:      cred.OwnerID,
		PasswordHash: cred.PasswordHash,
	}

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCredentialExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrActorNotFound.WrapMessage("credential owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create player credential")
	}

	cred.ID = credM.ID
	cred.CreatedAt = credM.CreatedAt
	cred.UpdatedAt = credM.UpdatedAt

	return nil
}

// Upsert creates or overwrites the owner's player credential in place.
func (repo *playerCredentialRepository) Upsert(ctx context.Context, cred *entity.Credential) error {
	credM := &model.PlayerCredentialModel{
		ID:           cred.ID,
		OwnerID:      cred.OwnerID,
		PasswordHash: cred.PasswordHash,
		UpdatedAt:    time.Now(),
	}

	if err := repo.db.WithContext(ctx).Clauses(credentialConflict).Create(credM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert player credential")
	}

	return nil
}

// DeleteByOwner removes the owner's player credential, if any.
func (repo *playerCredentialRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.PlayerCredentialModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete player credential")
	}

	return nil
}
