package postgres

import (
	"context"

	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/repository"
	"courtside/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// adminUserRepository implements the domain's AdminUserRepository interface.
type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository is the constructor for adminUserRepository.
func NewAdminUserRepository(db *gorm.DB) repository.AdminUserRepository {
	return &adminUserRepository{db: db}
}

// FindByID retrieves a single admin user by their unique ID.
func (repo *adminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	var userM model.AdminUserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActorNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAdminUserDomain(&userM), nil
}

// FindByEmail retrieves a single admin user by their email address.
func (repo *adminUserRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var userM model.AdminUserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActorNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAdminUserDomain(&userM), nil
}

// Create persists a new admin user. A unique email violation surfaces as the
// domain's email-taken error so concurrent signups race safely.
func (repo *adminUserRepository) Create(ctx context.Context, user *entity.AdminUser) error {
	userM := fromAdminUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("admin email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required admin user fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin user")
	}

	// Update the entity with generated values.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Delete removes an admin user by ID.
func (repo *adminUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AdminUserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete admin user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrActorNotFound
	}

	return nil
}

func toAdminUserDomain(userM *model.AdminUserModel) *entity.AdminUser {
	return &entity.AdminUser{
		ID:        userM.ID,
		Email:     userM.Email,
		FirstName: userM.FirstName,
		LastName:  userM.LastName,
		Image:     userM.Image,
		Role:      userM.Role,
		IsActive:  userM.IsActive,
		Preferences: entity.AdminPreferences{
			Theme:         userM.Theme,
			Notifications: userM.Notifications,
		},
		CreatedAt: userM.CreatedAt,
		UpdatedAt: userM.UpdatedAt,
	}
}

func fromAdminUserDomain(user *entity.AdminUser) *model.AdminUserModel {
	return &model.AdminUserModel{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Image:         user.Image,
		Role:          user.Role,
		IsActive:      user.IsActive,
		Theme:         user.Preferences.Theme,
		Notifications: user.Preferences.Notifications,
	}
}
