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

// adminSessionRepository implements SessionRepository over the
// admin_sessions table.
type adminSessionRepository struct {
	db *gorm.DB
}

// NewAdminSessionRepository is the constructor for adminSessionRepository.
func NewAdminSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &adminSessionRepository{db: db}
}

// Create persists a new admin session row for an issued token.
func (repo *adminSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := &model.AdminSessionModel{
		ID:          session.ID,
		OwnerID:     session.OwnerID,
		AccessToken: session.AccessToken,
		IsActive:    session.IsActive,
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// FindByToken retrieves an admin session by exact token string.
func (repo *adminSessionRepository) FindByToken(ctx context.Context, accessToken string) (*entity.Session, error) {
	var sessionM model.AdminSessionModel
	if err := repo.db.WithContext(ctx).Where("access_token = ?", accessToken).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAdminSessionDomain(&sessionM), nil
}

// FindByTokenAndOwner retrieves an admin session matching both token and owner.
func (repo *adminSessionRepository) FindByTokenAndOwner(ctx context.Context, accessToken string, ownerID uuid.UUID) (*entity.Session, error) {
	var sessionM model.AdminSessionModel
	err := repo.db.WithContext(ctx).
		Where("access_token = ? AND owner_id = ?", accessToken, ownerID).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAdminSessionDomain(&sessionM), nil
}

// DeactivateByOwner flips is_active on all of the owner's admin sessions.
func (repo *adminSessionRepository) DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.AdminSessionModel{}).
		Where("owner_id = ?", ownerID).
		Update("is_active", false).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to deactivate admin sessions")
	}

	return nil
}

// DeleteByOwner removes all of the owner's admin sessions.
func (repo *adminSessionRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.AdminSessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete admin sessions")
	}

	return nil
}

func toAdminSessionDomain(sessionM *model.AdminSessionModel) *entity.Session {
	return &entity.Session{
		ID:          sessionM.ID,
		OwnerID:     sessionM.OwnerID,
		Kind:        entity.KindAdmin,
		AccessToken: sessionM.AccessToken,
		IsActive:    sessionM.IsActive,
		CreatedAt:   sessionM.CreatedAt,
		UpdatedAt:   sessionM.UpdatedAt,
	}
}

// playerSessionRepository implements SessionRepository over the
// player_sessions table.
type playerSessionRepository struct {
	db *gorm.DB
}

// NewPlayerSessionRepository is the constructor for playerSessionRepository.
func NewPlayerSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &playerSessionRepository{db: db}
}

// Create persists a new player session row for an issued token.
func (repo *playerSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := &model.PlayerSessionModel{
		ID:          session.ID,
		OwnerID:     session.OwnerID,
		AccessToken: session.AccessToken,
		IsActive:    session.IsActive,
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create player session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// FindByToken retrieves a player session by exact token string.
func (repo *playerSessionRepository) FindByToken(ctx context.Context, accessToken string) (*entity.Session, error) {
	var sessionM model.PlayerSessionModel
	if err := repo.db.WithContext(ctx).Where("access_token = ?", accessToken).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toPlayerSessionDomain(&sessionM), nil
}

// FindByTokenAndOwner retrieves a player session matching both token and owner.
func (repo *playerSessionRepository) FindByTokenAndOwner(ctx context.Context, accessToken string, ownerID uuid.UUID) (*entity.Session, error) {
	var sessionM model.PlayerSessionModel
	err := repo.db.WithContext(ctx).
		Where("access_token = ? AND owner_id = ?", accessToken, ownerID).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toPlayerSessionDomain(&sessionM), nil
}

// DeactivateByOwner flips is_active on all of the owner's player sessions.
func (repo *playerSessionRepository) DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.PlayerSessionModel{}).
		Where("owner_id = ?", ownerID).
		Update("is_active", false).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to deactivate player sessions")
	}

	return nil
}

// DeleteByOwner removes all of the owner's player sessions.
func (repo *playerSessionRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.PlayerSessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete player sessions")
	}

	return nil
}

func toPlayerSessionDomain(sessionM *model.PlayerSessionModel) *entity.Session {
	return &entity.Session{
		ID:          sessionM.ID,
		OwnerID:     sessionM.OwnerID,
		Kind:        entity.KindPlayer,
		AccessToken: sessionM.AccessToken,
		IsActive:    sessionM.IsActive,
		CreatedAt:   sessionM.CreatedAt,
		UpdatedAt:   sessionM.UpdatedAt,
	}
}
