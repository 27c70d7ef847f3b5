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

// playerRepository implements the domain's PlayerRepository interface.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository is the constructor for playerRepository.
func NewPlayerRepository(db *gorm.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

// FindByID retrieves a single player by their unique ID.
func (repo *playerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Player, error) {
	var playerM model.PlayerModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&playerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActorNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toPlayerDomain(&playerM), nil
}

// FindByEmail retrieves a single player by their email address.
func (repo *playerRepository) FindByEmail(ctx context.Context, email string) (*entity.Player, error) {
	var playerM model.PlayerModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&playerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActorNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toPlayerDomain(&playerM), nil
}

// Create persists a new player.
func (repo *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	playerM := fromPlayerDomain(player)

	if err := repo.db.WithContext(ctx).Create(playerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("player email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required player fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create player")
	}

	player.ID = playerM.ID
	player.CreatedAt = playerM.CreatedAt
	player.UpdatedAt = playerM.UpdatedAt

	return nil
}

// Delete removes a player by ID.
func (repo *playerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PlayerModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete player")
	}
	if result.RowsAffected == 0 {
		return repository.ErrActorNotFound
	}

	return nil
}

func toPlayerDomain(playerM *model.PlayerModel) *entity.Player {
	return &entity.Player{
		ID:        playerM.ID,
		Email:     playerM.Email,
		FirstName: playerM.FirstName,
		LastName:  playerM.LastName,
		Username:  playerM.Username,
		Bio:       playerM.Bio,
		IsActive:  playerM.IsActive,
		CreatedAt: playerM.CreatedAt,
		UpdatedAt: playerM.UpdatedAt,
	}
}

func fromPlayerDomain(player *entity.Player) *model.PlayerModel {
	return &model.PlayerModel{
		ID:        player.ID,
		Email:     player.Email,
		FirstName: player.FirstName,
		LastName:  player.LastName,
		Username:  player.Username,
		Bio:       player.Bio,
		IsActive:  player.IsActive,
	}
}
