package impl

import (
	"context"
	"testing"

	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/service"
	"courtside/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayerService(factory *fakeFactory, tokens *fakeTokenService, publisher *fakePublisher) usecase.PlayerAuthUsecase {
	// A nil *fakePublisher must become a nil interface, or the service's
	// nil-publisher guard never fires.
	var pub service.EventPublisher
	if publisher != nil {
		pub = publisher
	}
	return NewPlayerAuthService(PlayerAuthServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		Players:      factory.players,
		Credentials:  factory.playerCredentials,
		Sessions:     factory.playerSessions,
		Hasher:       &fakeHasher{},
		TokenService: tokens,
		Publisher:    pub,
		Logger:       newDiscardLogger(),
	})
}

func TestPlayerAuthService_Signup_Success(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	svc := newPlayerService(factory, newFakeTokenService(), publisher)

	out, err := svc.Signup(context.Background(), &usecase.SignupPlayerInput{
		Email:     "pat@club.test",
		Password:  "secret123",
		FirstName: "Pat",
		Username:  "pat_padel",
		Bio:       "left court preferred",
	})

	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)

	player, err := factory.players.FindByEmail(context.Background(), "pat@club.test")
	require.NoError(t, err)
	assert.Equal(t, "pat_padel", player.Username)
	assert.True(t, player.IsActive)

	_, err = factory.playerCredentials.FindByOwner(context.Background(), player.ID)
	require.NoError(t, err)

	session, err := factory.playerSessions.FindByTokenAndOwner(context.Background(), out.AccessToken, player.ID)
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Equal(t, []string{service.EventSignup}, publisher.eventNames())
}

func TestPlayerAuthService_Signup_EmailTaken(t *testing.T) {
	svc := newPlayerService(newFakeFactory(), newFakeTokenService(), nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &usecase.SignupPlayerInput{Email: "dup@club.test", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &usecase.SignupPlayerInput{Email: "dup@club.test", Password: "other456"})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestPlayerAuthService_Login_WrongPassword(t *testing.T) {
	factory := newFakeFactory()
	svc := newPlayerService(factory, newFakeTokenService(), nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &usecase.SignupPlayerInput{Email: "pat@club.test", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &usecase.LoginInput{Email: "pat@club.test", Password: "nope"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestPlayerAuthService_GetSession_OwnerAttached(t *testing.T) {
	factory := newFakeFactory()
	svc := newPlayerService(factory, newFakeTokenService(), nil)
	ctx := context.Background()

	out, err := svc.Signup(ctx, &usecase.SignupPlayerInput{Email: "pat@club.test", Password: "secret123"})
	require.NoError(t, err)

	session, err := svc.GetSession(ctx, out.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, session.PlayerOwner)
	assert.Equal(t, "pat@club.test", session.PlayerOwner.Email)
	assert.Nil(t, session.AdminOwner)
}

func TestPlayerAuthService_LogoutThenDelete(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	svc := newPlayerService(factory, newFakeTokenService(), publisher)
	ctx := context.Background()

	out, err := svc.Signup(ctx, &usecase.SignupPlayerInput{Email: "pat@club.test", Password: "secret123"})
	require.NoError(t, err)

	player, err := factory.players.FindByEmail(ctx, "pat@club.test")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, player.ID))
	session, err := factory.playerSessions.FindByToken(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.False(t, session.IsActive)

	require.NoError(t, svc.DeleteActor(ctx, player.ID))
	_, err = factory.players.FindByID(ctx, player.ID)
	assert.Error(t, err)
	assert.Equal(t, 0, factory.playerSessions.countByOwner(player.ID))

	assert.Equal(t, []string{service.EventSignup, service.EventLogout, service.EventActorDeleted}, publisher.eventNames())
}
