package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
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

// Defaults applied to freshly created admin accounts.
const (
	defaultAdminRole  = "user"
	defaultAdminTheme = "light"
)

// adminAuthService implements the AdminAuthUsecase interface.
type adminAuthService struct {
	txManager    repository.TransactionManager
	users        repository.AdminUserRepository
	credentials  usecase.CredentialStore
	sessions     repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AdminAuthServiceParams holds dependencies for adminAuthService, injected by Fx.
type AdminAuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Users        repository.AdminUserRepository
	Credentials  repository.CredentialRepository `name:"adminCredentials"`
	Sessions     repository.SessionRepository    `name:"adminSessions"`
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewAdminAuthService is the constructor for adminAuthService.
func NewAdminAuthService(params AdminAuthServiceParams) usecase.AdminAuthUsecase {
	return &adminAuthService{
		txManager:    params.TxManager,
		users:        params.Users,
		credentials:  NewCredentialStore(params.Credentials, params.Hasher, entity.KindAdmin),
		sessions:     params.Sessions,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adminAuthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the admin user together with its credential, then logs the
// new account in.
func (srv *adminAuthService) Signup(ctx context.Context, input *usecase.SignupAdminInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Info("Starting admin signup", slog.String("email", input.Email))

	newUser := buildNewAdminUser(input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users := repoFactory.AdminUsers()

		_, err := users.FindByEmail(ctx, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "admin email already registered")
		}
		if !errors.Is(err, repository.ErrActorNotFound) {
			return errors.Wrap(err, "failed to check admin email availability")
		}

		if err := users.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create admin user")
		}

		store := NewCredentialStore(repoFactory.AdminCredentials(), srv.hasher, entity.KindAdmin)

		return store.Save(ctx, newUser.ID, input.Password)
	})
	if err != nil {
		srv.log(ctx).Warn("Admin signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin signup transaction")
	}

	srv.log(ctx).Debug("Admin signup completed", slog.Any("userID", newUser.ID))
	srv.publishEvent(ctx, newUser.ID, service.EventSignup)

	return srv.issueToken(ctx, newUser)
}

// Login validates credentials and issues a fresh access token. The matching
// session row is written best-effort: a storage fault only degrades later
// revocability, never the login itself.
func (srv *adminAuthService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting admin login", slog.String("email", input.Email))

	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			srv.log(ctx).Warn("Admin login failed: unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown admin email")
		}

		return nil, errors.Wrap(err, "failed to load admin user for login")
	}

	if err := srv.credentials.Verify(ctx, user.ID, input.Password); err != nil {
		srv.log(ctx).Warn("Admin login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "admin credential verification failed")
	}

	out, err := srv.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.publishEvent(ctx, user.ID, service.EventLogin)

	return out, nil
}

// issueToken signs a token for the user and records the session for it.
func (srv *adminAuthService) issueToken(ctx context.Context, user *entity.AdminUser) (*usecase.TokenOutput, error) {
	accessToken, err := srv.tokenService.Issue(user.ID, entity.KindAdmin, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue admin token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	session := &entity.Session{
		OwnerID:     user.ID,
		Kind:        entity.KindAdmin,
		AccessToken: accessToken,
		IsActive:    true,
	}
	if err := srv.sessions.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to record admin session", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	return &usecase.TokenOutput{AccessToken: accessToken}, nil
}

// GetSession returns the session row holding the exact token string, with
// the owning admin user attached when it still exists.
func (srv *adminAuthService) GetSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	session, err := srv.sessions.FindByToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "no admin session for token")
		}

		return nil, errors.Wrap(err, "failed to load admin session")
	}

	owner, err := srv.users.FindByID(ctx, session.OwnerID)
	if err != nil {
		if !errors.Is(err, repository.ErrActorNotFound) {
			return nil, errors.Wrap(err, "failed to load admin session owner")
		}

		srv.log(ctx).Warn("Admin session owner no longer exists", slog.Any("ownerID", session.OwnerID))
	}
	session.AdminOwner = owner

	return session, nil
}

// GetProfile returns the admin user behind a resolved identity.
func (srv *adminAuthService) GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.AdminUser, error) {
	user, err := srv.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return nil, errors.Wrap(domainerrors.ErrActorNotFound, "admin user not found")
		}

		return nil, errors.Wrap(err, "failed to load admin profile")
	}

	return user, nil
}

// ChangePassword overwrites the stored credential in place. Existing
// sessions stay valid; only future logins use the new password.
func (srv *adminAuthService) ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error {
	if _, err := srv.users.FindByID(ctx, actorID); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return errors.Wrap(domainerrors.ErrActorNotFound, "admin user not found")
		}

		return errors.Wrap(err, "failed to load admin user for password change")
	}

	if err := srv.credentials.Reset(ctx, actorID, newPassword); err != nil {
		return errors.Wrap(err, "failed to reset admin credential")
	}

	srv.log(ctx).Info("Admin password changed", slog.Any("userID", actorID))

	return nil
}

// Logout soft-revokes every session the admin owns.
func (srv *adminAuthService) Logout(ctx context.Context, actorID uuid.UUID) error {
	if err := srv.sessions.DeactivateByOwner(ctx, actorID); err != nil {
		return errors.Wrap(err, "failed to deactivate admin sessions")
	}

	srv.log(ctx).Info("Admin logged out", slog.Any("userID", actorID))
	srv.publishEvent(ctx, actorID, service.EventLogout)

	return nil
}

// DeleteActor removes the admin user with its credential and any
// database-backed sessions in one transaction, then clears the injected
// session store separately in case sessions live outside the database.
func (srv *adminAuthService) DeleteActor(ctx context.Context, actorID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users := repoFactory.AdminUsers()

		if _, err := users.FindByID(ctx, actorID); err != nil {
			if errors.Is(err, repository.ErrActorNotFound) {
				return errors.Wrap(domainerrors.ErrActorNotFound, "admin user not found")
			}

			return errors.Wrap(err, "failed to load admin user for removal")
		}

		store := NewCredentialStore(repoFactory.AdminCredentials(), srv.hasher, entity.KindAdmin)
		if err := store.Remove(ctx, actorID); err != nil {
			return err
		}

		if err := repoFactory.AdminSessions().DeleteByOwner(ctx, actorID); err != nil {
			return errors.Wrap(err, "failed to delete admin sessions")
		}

		if err := users.Delete(ctx, actorID); err != nil {
			return errors.Wrap(err, "failed to delete admin user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Admin removal failed", slog.Any("userID", actorID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute admin removal transaction")
	}

	if err := srv.sessions.DeleteByOwner(ctx, actorID); err != nil {
		srv.log(ctx).Error("Failed to clear admin session store", slog.Any("userID", actorID), slog.Any("error", err))
	}

	srv.log(ctx).Info("Admin user removed", slog.Any("userID", actorID))
	srv.publishEvent(ctx, actorID, service.EventActorDeleted)

	return nil
}

// publishEvent emits an audit event best-effort; failures are logged only.
func (srv *adminAuthService) publishEvent(ctx context.Context, actorID uuid.UUID, event string) {
	if srv.publisher == nil {
		return
	}

	evt := &service.AuthEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		ActorID:    actorID.String(),
		ActorKind:  entity.KindAdmin.String(),
		Event:      event,
		OccurredAt: time.Now(),
	}
	if err := srv.publisher.PublishAuthEvent(ctx, evt); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event", slog.String("event", event), slog.Any("error", err))
	}
}

func buildNewAdminUser(input *usecase.SignupAdminInput) *entity.AdminUser {
	role := input.Role
	if role == "" {
		role = defaultAdminRole
	}

	return &entity.AdminUser{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Image:     avatarURL(input.FirstName),
		Role:      role,
		IsActive:  true,
		Preferences: entity.AdminPreferences{
			Theme:         defaultAdminTheme,
			Notifications: true,
		},
	}
}

// avatarURL derives a deterministic placeholder avatar from the first name.
func avatarURL(firstName string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(firstName))
}
