package impl

import (
	"context"
	"log/slog"

	"courtside/config"
	deliverycontext "courtside/internal/delivery/context"
	"courtside/internal/domain/entity"
	domainerrors "courtside/internal/domain/errors"
	"courtside/internal/domain/repository"
	"courtside/internal/domain/service"
	"courtside/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// resolverChain implements usecase.BearerAuthenticator. It verifies the
// token signature exactly once, then offers the decoded claims to each
// resolver in order. The first accepted or rejected resolution ends the
// walk; a token no resolver claims is unauthorized.
type resolverChain struct {
	tokenService service.TokenService
	resolvers    []usecase.TokenResolver
	logger       *slog.Logger
}

// BearerAuthenticatorParams holds dependencies for the resolver chain, injected by Fx.
type BearerAuthenticatorParams struct {
	fx.In

	Config         *config.Config
	TokenService   service.TokenService
	AdminSessions  repository.SessionRepository `name:"adminSessions"`
	PlayerSessions repository.SessionRepository `name:"playerSessions"`
	Logger         *slog.Logger
}

// NewBearerAuthenticator wires the admin and player resolvers into a chain.
// Order does not affect correctness since each resolver only claims its own
// token kind, but admin is checked first as the more common backoffice path.
func NewBearerAuthenticator(params BearerAuthenticatorParams) usecase.BearerAuthenticator {
	return &resolverChain{
		tokenService: params.TokenService,
		resolvers: []usecase.TokenResolver{
			NewAdminTokenResolver(params.Config.Auth, params.AdminSessions, params.Logger),
			NewPlayerTokenResolver(params.Config.Auth, params.PlayerSessions, params.Logger),
		},
		logger: params.Logger,
	}
}

// NewResolverChain builds a chain from explicit resolvers. Used directly in
// tests and anywhere custom ordering is needed.
func NewResolverChain(tokenService service.TokenService, logger *slog.Logger, resolvers ...usecase.TokenResolver) usecase.BearerAuthenticator {
	return &resolverChain{
		tokenService: tokenService,
		resolvers:    resolvers,
		logger:       logger,
	}
}

func (c *resolverChain) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// Authenticate resolves a raw bearer token to a caller identity. All failure
// shapes collapse to generic unauthorized errors for the client; the precise
// reason goes to the log only.
func (c *resolverChain) Authenticate(ctx context.Context, accessToken string) (*entity.Identity, error) {
	if accessToken == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no bearer token provided")
	}

	claims, err := c.tokenService.Verify(accessToken)
	if err != nil {
		c.log(ctx).Debug("Token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	for _, resolver := range c.resolvers {
		resolution := resolver.Resolve(ctx, accessToken, claims)

		switch resolution.Status {
		case usecase.ResolutionAccepted:
			return resolution.Identity, nil
		case usecase.ResolutionRejected:
			c.log(ctx).Warn("Token rejected",
				slog.Any("kind", claims.Kind), slog.Any("actorID", claims.ActorID), slog.String("reason", resolution.Reason))

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, resolution.Reason)
		case usecase.ResolutionNotApplicable:
			continue
		}
	}

	c.log(ctx).Warn("No resolver claimed token", slog.Any("kind", claims.Kind))

	return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token matched no authentication strategy")
}
