// Package usecase defines the application's business logic interfaces and
// their input/output structures.
package usecase

import (
	"context"

	"courtside/internal/domain/entity"

	"github.com/google/uuid"
)

// SignupAdminInput carries the admin signup payload.
type SignupAdminInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// SignupPlayerInput carries the player signup payload.
type SignupPlayerInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
}

// ChangePasswordInput carries the password replacement payload.
type ChangePasswordInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput carries the login payload, identical for both actor kinds.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenOutput is the response of signup and login: the signed access token.
// Signup logs the new actor in immediately, so both operations return the
// same shape.
type TokenOutput struct {
	AccessToken string `json:"access_token"`
}

// AdminAuthUsecase orchestrates signup, login and session access for
// administrative users.
type AdminAuthUsecase interface {
	// Signup creates the admin user and credential, then logs the new
	// account in. Fails with a conflict when the email is taken.
	Signup(ctx context.Context, input *SignupAdminInput) (*TokenOutput, error)

	// Login validates credentials, issues a token and records a session.
	// Session persistence is best-effort: a storage fault degrades
	// revocability but never fails the login.
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)

	// GetSession returns the raw session row for the exact token string,
	// with the owning admin user populated.
	GetSession(ctx context.Context, accessToken string) (*entity.Session, error)

	// GetProfile returns the admin user for a resolved identity.
	GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.AdminUser, error)

	// ChangePassword rehashes and overwrites the stored credential in place.
	ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error

	// Logout soft-revokes all of the actor's sessions by owner ID.
	Logout(ctx context.Context, actorID uuid.UUID) error

	// DeleteActor removes the admin user with its credential and sessions.
	DeleteActor(ctx context.Context, actorID uuid.UUID) error
}

// PlayerAuthUsecase orchestrates signup, login and session access for
// players. Identical shape to the admin orchestrator, parameterized by the
// player-kind collections.
type PlayerAuthUsecase interface {
	Signup(ctx context.Context, input *SignupPlayerInput) (*TokenOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
	GetSession(ctx context.Context, accessToken string) (*entity.Session, error)
	GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.Player, error)
	ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error
	Logout(ctx context.Context, actorID uuid.UUID) error
	DeleteActor(ctx context.Context, actorID uuid.UUID) error
}
