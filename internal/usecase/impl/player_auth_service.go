package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "courtside/internal/delivery/context"
	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/repository"
	"courtside/internal/domain/service"
	"courtside/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// playerAuthService implements the PlayerAuthUsecase interface. It mirrors
// the admin orchestrator over the player-kind collections; the two are kept
// separate because their entities and session policies differ.
type playerAuthService struct {
	txManager    repository.TransactionManager
	players      repository.PlayerRepository
	credentials  usecase.CredentialStore
	sessions     repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// PlayerAuthServiceParams holds dependencies for playerAuthService, injected by Fx.
type PlayerAuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Players      repository.PlayerRepository
	Credentials  repository.CredentialRepository `name:"playerCredentials"`
	Sessions     repository.SessionRepository    `name:"playerSessions"`
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewPlayerAuthService is the constructor for playerAuthService.
func NewPlayerAuthService(params PlayerAuthServiceParams) usecase.PlayerAuthUsecase {
	return &playerAuthService{
		txManager:    params.TxManager,
		players:      params.Players,
		credentials:  NewCredentialStore(params.Credentials, params.Hasher, entity.KindPlayer),
		sessions:     params.Sessions,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *playerAuthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the player together with its credential, then logs the new
// account in.
func (srv *playerAuthService) Signup(ctx context.Context, input *usecase.SignupPlayerInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Info("Starting player signup", slog.String("email", input.Email))

	newPlayer := &entity.Player{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Bio:       input.Bio,
		IsActive:  true,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		players := repoFactory.Players()

		_, err := players.FindByEmail(ctx, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "player email already registered")
		}
		if !errors.Is(err, repository.ErrActorNotFound) {
			return errors.Wrap(err, "failed to check player email availability")
		}

		if err := players.Create(ctx, newPlayer); err != nil {
			return errors.Wrap(err, "failed to create player")
		}

		store := NewCredentialStore(repoFactory.PlayerCredentials(), srv.hasher, entity.KindPlayer)

		return store.Save(ctx, newPlayer.ID, input.Password)
	})
	if err != nil {
		srv.log(ctx).Warn("Player signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute player signup transaction")
	}

	srv.log(ctx).Debug("Player signup completed", slog.Any("playerID", newPlayer.ID))
	srv.publishEvent(ctx, newPlayer.ID, service.EventSignup)

	return srv.issueToken(ctx, newPlayer)
}

// Login validates credentials and issues a fresh access token. The session
// write is best-effort, same as the admin path.
func (srv *playerAuthService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting player login", slog.String("email", input.Email))

	player, err := srv.players.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			srv.log(ctx).Warn("Player login failed: unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown player email")
		}

		return nil, errors.Wrap(err, "failed to load player for login")
	}

	if err := srv.credentials.Verify(ctx, player.ID, input.Password); err != nil {
		srv.log(ctx).Warn("Player login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "player credential verification failed")
	}

	out, err := srv.issueToken(ctx, player)
	if err != nil {
		return nil, err
	}

	srv.publishEvent(ctx, player.ID, service.EventLogin)

	return out, nil
}

func (srv *playerAuthService) issueToken(ctx context.Context, player *entity.Player) (*usecase.TokenOutput, error) {
	accessToken, err := srv.tokenService.Issue(player.ID, entity.KindPlayer, player.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue player token", slog.Any("playerID", player.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	session := &entity.Session{
		OwnerID:     player.ID,
		Kind:        entity.KindPlayer,
		AccessToken: accessToken,
		IsActive:    true,
	}
	if err := srv.sessions.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to record player session", slog.Any("playerID", player.ID), slog.Any("error", err))
	}

	return &usecase.TokenOutput{AccessToken: accessToken}, nil
}

// GetSession returns the session row holding the exact token string, with
// the owning player attached when it still exists.
func (srv *playerAuthService) GetSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	session, err := srv.sessions.FindByToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "no player session for token")
		}

		return nil, errors.Wrap(err, "failed to load player session")
	}

	owner, err := srv.players.FindByID(ctx, session.OwnerID)
	if err != nil {
		if !errors.Is(err, repository.ErrActorNotFound) {
			return nil, errors.Wrap(err, "failed to load player session owner")
		}

		srv.log(ctx).Warn("Player session owner no longer exists", slog.Any("ownerID", session.OwnerID))
	}
	session.PlayerOwner = owner

	return session, nil
}

// GetProfile returns the player behind a resolved identity.
func (srv *playerAuthService) GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.Player, error) {
	player, err := srv.players.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return nil, errors.Wrap(domainerrors.ErrActorNotFound, "player not found")
		}

		return nil, errors.Wrap(err, "failed to load player profile")
	}

	return player, nil
}

// ChangePassword overwrites the stored credential in place.
func (srv *playerAuthService) ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error {
	if _, err := srv.players.FindByID(ctx, actorID); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return errors.Wrap(domainerrors.ErrActorNotFound, "player not found")
		}

		return errors.Wrap(err, "failed to load player for password change")
	}

	if err := srv.credentials.Reset(ctx, actorID, newPassword); err != nil {
		return errors.Wrap(err, "failed to reset player credential")
	}

	srv.log(ctx).Info("Player password changed", slog.Any("playerID", actorID))

	return nil
}

// Logout soft-revokes every session the player owns.
func (srv *playerAuthService) Logout(ctx context.Context, actorID uuid.UUID) error {
	if err := srv.sessions.DeactivateByOwner(ctx, actorID); err != nil {
		return errors.Wrap(err, "failed to deactivate player sessions")
	}

	srv.log(ctx).Info("Player logged out", slog.Any("playerID", actorID))
	srv.publishEvent(ctx, actorID, service.EventLogout)

	return nil
}

// DeleteActor removes the player with its credential and any database-backed
// sessions in one transaction, then clears the injected session store.
func (srv *playerAuthService) DeleteActor(ctx context.Context, actorID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		players := repoFactory.Players()

		if _, err := players.FindByID(ctx, actorID); err != nil {
			if errors.Is(err, repository.ErrActorNotFound) {
				return errors.Wrap(domainerrors.ErrActorNotFound, "player not found")
			}

			return errors.Wrap(err, "failed to load player for removal")
		}

		store := NewCredentialStore(repoFactory.PlayerCredentials(), srv.hasher, entity.KindPlayer)
		if err := store.Remove(ctx, actorID); err != nil {
			return err
		}

		if err := repoFactory.PlayerSessions().DeleteByOwner(ctx, actorID); err != nil {
			return errors.Wrap(err, "failed to delete player sessions")
		}

		if err := players.Delete(ctx, actorID); err != nil {
			return errors.Wrap(err, "failed to delete player")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Player removal failed", slog.Any("playerID", actorID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute player removal transaction")
	}

	if err := srv.sessions.DeleteByOwner(ctx, actorID); err != nil {
		srv.log(ctx).Error("Failed to clear player session store", slog.Any("playerID", actorID), slog.Any("error", err))
	}

	srv.log(ctx).Info("Player removed", slog.Any("playerID", actorID))
	srv.publishEvent(ctx, actorID, service.EventActorDeleted)

	return nil
}

func (srv *playerAuthService) publishEvent(ctx context.Context, actorID uuid.UUID, event string) {
	if srv.publisher == nil {
		return
	}

	evt := &service.AuthEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		ActorID:    actorID.String(),
		ActorKind:  entity.KindPlayer.String(),
		Event:      event,
		OccurredAt: time.Now(),
	}
	if err := srv.publisher.PublishAuthEvent(ctx, evt); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event", slog.String("event", event), slog.Any("error", err))
	}
}
