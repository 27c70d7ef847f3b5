package handler

import (
	"log/slog"
	"net/http"

	"courtside/internal/delivery/http/middleware"
	"courtside/internal/delivery/http/response"
	"courtside/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlayerHandler serves the player-only routes.
type PlayerHandler struct {
	player usecase.PlayerAuthUsecase
	logger *slog.Logger
}

// NewPlayerHandler is the constructor for PlayerHandler, injected by Fx.
func NewPlayerHandler(player usecase.PlayerAuthUsecase, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		player: player,
		logger: logger,
	}
}

// GetProfile returns the authenticated player's own profile.
func (h *PlayerHandler) GetProfile(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	player, err := h.player.GetProfile(c.Request().Context(), identity.ActorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPlayerProfileResponse(player), "Profile retrieved successfully")
}
