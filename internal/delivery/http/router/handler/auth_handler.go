// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"courtside/internal/delivery/http/middleware"
	"courtside/internal/delivery/http/response"
	"courtside/internal/domain/entity"
	"courtside/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds both orchestrators so the shared /auth routes can serve
// whichever actor kind the resolved identity carries.
type AuthHandler struct {
	admin  usecase.AdminAuthUsecase
	player usecase.PlayerAuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(admin usecase.AdminAuthUsecase, player usecase.PlayerAuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		admin:  admin,
		player: player,
		logger: logger,
	}
}

// sessionResponse is the wire shape of a session row.
type sessionResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Kind        string    `json:"kind"`
	AccessToken string    `json:"access_token"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       any       `json:"owner,omitempty"`
}

// adminProfileResponse is the wire shape of an admin user.
type adminProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Image         string    `json:"image"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	Theme         string    `json:"theme"`
	Notifications bool      `json:"notifications"`
	CreatedAt     time.Time `json:"created_at"`
}

// playerProfileResponse is the wire shape of a player.
type playerProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminProfileResponse(user *entity.AdminUser) *adminProfileResponse {
	return &adminProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Image:         user.Image,
		Role:          user.Role,
		IsActive:      user.IsActive,
		Theme:         user.Preferences.Theme,
		Notifications: user.Preferences.Notifications,
		CreatedAt:     user.CreatedAt,
	}
}

func toPlayerProfileResponse(player *entity.Player) *playerProfileResponse {
	return &playerProfileResponse{
		ID:        player.ID,
		Email:     player.Email,
		FirstName: player.FirstName,
		LastName:  player.LastName,
		Username:  player.Username,
		Bio:       player.Bio,
		IsActive:  player.IsActive,
		CreatedAt: player.CreatedAt,
	}
}

func toSessionResponse(session *entity.Session) *sessionResponse {
	resp := &sessionResponse{
		ID:          session.ID,
		OwnerID:     session.OwnerID,
		Kind:        session.Kind.String(),
		AccessToken: session.AccessToken,
		IsActive:    session.IsActive,
		CreatedAt:   session.CreatedAt,
	}
	if session.AdminOwner != nil {
		resp.Owner = toAdminProfileResponse(session.AdminOwner)
	}
	if session.PlayerOwner != nil {
		resp.Owner = toPlayerProfileResponse(session.PlayerOwner)
	}

	return resp
}

// AdminSignup handles the admin signup request.
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	var input usecase.SignupAdminInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.admin.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Admin registered successfully")
}

// AdminLogin handles the admin login request.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.admin.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// PlayerSignup handles the player signup request.
func (h *AuthHandler) PlayerSignup(c echo.Context) error {
	var input usecase.SignupPlayerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.player.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Player registered successfully")
}

// PlayerLogin handles the player login request.
func (h *AuthHandler) PlayerLogin(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.player.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Profile returns the actor behind the resolved identity, admin or player.
func (h *AuthHandler) Profile(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	ctx := c.Request().Context()

	switch identity.Kind {
	case entity.KindPlayer:
		player, err := h.player.GetProfile(ctx, identity.ActorID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toPlayerProfileResponse(player), "Profile retrieved successfully")
	default:
		user, err := h.admin.GetProfile(ctx, identity.ActorID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toAdminProfileResponse(user), "Profile retrieved successfully")
	}
}

// AdminSession returns the admin session row for the presented raw token.
// The resolver chain is deliberately not consulted here: the endpoint
// reports what the store holds, revoked rows included.
func (h *AuthHandler) AdminSession(c echo.Context) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing or malformed bearer token")
	}

	session, err := h.admin.GetSession(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(session), "Session retrieved successfully")
}

// PlayerSession returns the player session row for the presented raw token.
func (h *AuthHandler) PlayerSession(c echo.Context) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing or malformed bearer token")
	}

	session, err := h.player.GetSession(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(session), "Session retrieved successfully")
}

// Logout soft-revokes every session of the resolved actor.
func (h *AuthHandler) Logout(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	ctx := c.Request().Context()

	var err error
	if identity.Kind == entity.KindPlayer {
		err = h.player.Logout(ctx, identity.ActorID)
	} else {
		err = h.admin.Logout(ctx, identity.ActorID)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// ChangePassword replaces the resolved actor's credential.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()

	var err error
	if identity.Kind == entity.KindPlayer {
		err = h.player.ChangePassword(ctx, identity.ActorID, input.Password)
	} else {
		err = h.admin.ChangePassword(ctx, identity.ActorID, input.Password)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"}, "Password updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
