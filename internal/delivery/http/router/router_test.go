package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtside/internal/delivery/http/middleware"
	"courtside/internal/delivery/http/response"
	"courtside/internal/delivery/http/router"
	"courtside/internal/delivery/http/router/handler"
	"courtside/internal/delivery/http/validator"
	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminUsecase struct {
	token       *usecase.TokenOutput
	user        *entity.AdminUser
	session     *entity.Session
	loginErr    error
	sessionErr  error
	logoutCount int
	passwords   []string
}

func (s *stubAdminUsecase) Signup(ctx context.Context, input *usecase.SignupAdminInput) (*usecase.TokenOutput, error) {
	return s.token, nil
}

func (s *stubAdminUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}

	return s.token, nil
}

func (s *stubAdminUsecase) GetSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}

	return s.session, nil
}

func (s *stubAdminUsecase) GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.AdminUser, error) {
	if s.user == nil || s.user.ID != actorID {
		return nil, domainerrors.ErrActorNotFound
	}

	return s.user, nil
}

func (s *stubAdminUsecase) ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error {
	s.passwords = append(s.passwords, newPassword)

	return nil
}

func (s *stubAdminUsecase) Logout(ctx context.Context, actorID uuid.UUID) error {
	s.logoutCount++

	return nil
}

func (s *stubAdminUsecase) DeleteActor(ctx context.Context, actorID uuid.UUID) error {
	return nil
}

type stubPlayerUsecase struct {
	token       *usecase.TokenOutput
	player      *entity.Player
	session     *entity.Session
	logoutCount int
	passwords   []string
}

func (s *stubPlayerUsecase) Signup(ctx context.Context, input *usecase.SignupPlayerInput) (*usecase.TokenOutput, error) {
	return s.token, nil
}

func (s *stubPlayerUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	return s.token, nil
}

func (s *stubPlayerUsecase) GetSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	if s.session == nil {
		return nil, domainerrors.ErrSessionNotFound
	}

	return s.session, nil
}

func (s *stubPlayerUsecase) GetProfile(ctx context.Context, actorID uuid.UUID) (*entity.Player, error) {
	if s.player == nil || s.player.ID != actorID {
		return nil, domainerrors.ErrActorNotFound
	}

	return s.player, nil
}

func (s *stubPlayerUsecase) ChangePassword(ctx context.Context, actorID uuid.UUID, newPassword string) error {
	s.passwords = append(s.passwords, newPassword)

	return nil
}

func (s *stubPlayerUsecase) Logout(ctx context.Context, actorID uuid.UUID) error {
	s.logoutCount++

	return nil
}

func (s *stubPlayerUsecase) DeleteActor(ctx context.Context, actorID uuid.UUID) error {
	return nil
}

// stubAuthenticator resolves tokens from a fixed map, standing in for the
// resolver chain.
type stubAuthenticator struct {
	identities map[string]*entity.Identity
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, accessToken string) (*entity.Identity, error) {
	identity, ok := s.identities[accessToken]
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return identity, nil
}

type testEnv struct {
	server *echo.Echo
	admin  *stubAdminUsecase
	player *stubPlayerUsecase

	adminID  uuid.UUID
	playerID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adminID := uuid.New()
	playerID := uuid.New()

	admin := &stubAdminUsecase{
		token: &usecase.TokenOutput{AccessToken: "admin-token"},
		user: &entity.AdminUser{
			ID:        adminID,
			Email:     "boss@club.test",
			FirstName: "Alex",
			Role:      "user",
			IsActive:  true,
			Preferences: entity.AdminPreferences{
				Theme:         "light",
				Notifications: true,
			},
			CreatedAt: time.Now(),
		},
	}
	admin.session = &entity.Session{
		ID:          uuid.New(),
		OwnerID:     adminID,
		Kind:        entity.KindAdmin,
		AccessToken: "admin-token",
		IsActive:    true,
		AdminOwner:  admin.user,
	}

	player := &stubPlayerUsecase{
		token: &usecase.TokenOutput{AccessToken: "player-token"},
		player: &entity.Player{
			ID:        playerID,
			Email:     "ace@club.test",
			FirstName: "Sam",
			Username:  "ace",
			IsActive:  true,
			CreatedAt: time.Now(),
		},
	}

	authn := &stubAuthenticator{identities: map[string]*entity.Identity{
		"admin-token":  {ActorID: adminID, Kind: entity.KindAdmin, Email: "boss@club.test"},
		"player-token": {ActorID: playerID, Kind: entity.KindPlayer, Email: "ace@club.test"},
	}}

	server := echo.New()
	server.HideBanner = true
	server.Validator = validator.New()
	server.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(admin, player, logger),
		PlayerHandler:  handler.NewPlayerHandler(player, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authn),
	})
	r.RegisterRoutes(server)

	return &testEnv{
		server:   server,
		admin:    admin,
		player:   player,
		adminID:  adminID,
		playerID: playerID,
	}
}

func (env *testEnv) request(t *testing.T, method, path, authHeader string, body any) (*httptest.ResponseRecorder, *response.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, &envelope
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestAdminSignup_Created(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodPost, "/auth/admin/signup", "", map[string]string{
		"email":      "boss@club.test",
		"password":   "secret-pass",
		"first_name": "Alex",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin-token", data["access_token"])
}

func TestAdminSignup_RejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodPost, "/auth/admin/signup", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret-pass",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestAdminLogin_OK(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodPost, "/auth/admin/login", "", map[string]string{
		"email":    "boss@club.test",
		"password": "secret-pass",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin-token", data["access_token"])
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.admin.loginErr = domainerrors.ErrInvalidCredentials

	rec, envelope := env.request(t, http.MethodPost, "/auth/admin/login", "", map[string]string{
		"email":    "boss@club.test",
		"password": "wrong-pass",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestPlayerSignup_Created(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodPost, "/auth/player/signup", "", map[string]string{
		"email":    "ace@club.test",
		"password": "secret-pass",
		"username": "ace",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "player-token", data["access_token"])
}

func TestProfile_AdminToken(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/profile", "Bearer admin-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boss@club.test", data["email"])
	assert.Equal(t, "light", data["theme"])
}

func TestProfile_PlayerToken(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/profile", "Bearer player-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ace@club.test", data["email"])
	assert.Equal(t, "ace", data["username"])
}

func TestProfile_MissingBearer(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/profile", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestProfile_GarbledBearer(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/profile", "Token admin-token", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestProfile_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.request(t, http.MethodGet, "/auth/profile", "Bearer forged-token", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayersProfile_PlayerAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/players/profile", "Bearer player-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ace", data["username"])
}

func TestPlayersProfile_AdminKindRejected(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/players/profile", "Bearer admin-token", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestAdminSession_ReturnsStoredRow(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/user-session", "Bearer admin-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin-token", data["access_token"])
	assert.Equal(t, "admin", data["kind"])
	owner, ok := data["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boss@club.test", owner["email"])
}

func TestAdminSession_MissingBearer(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.request(t, http.MethodGet, "/auth/user-session", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayerSession_NotRecorded(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodGet, "/auth/player-session", "Bearer player-token", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", envelope.Error.Code)
}

func TestLogout_DispatchesByKind(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.request(t, http.MethodPost, "/auth/logout", "Bearer player-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.player.logoutCount)
	assert.Equal(t, 0, env.admin.logoutCount)
}

func TestChangePassword_OK(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.request(t, http.MethodPut, "/auth/password", "Bearer admin-token", map[string]string{
		"password": "brand-new-pass",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"brand-new-pass"}, env.admin.passwords)
	assert.Empty(t, env.player.passwords)
}

func TestChangePassword_TooShort(t *testing.T) {
	env := newTestEnv(t)

	rec, envelope := env.request(t, http.MethodPut, "/auth/password", "Bearer admin-token", map[string]string{
		"password": "abc",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Empty(t, env.admin.passwords)
}
