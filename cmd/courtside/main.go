package main

import (
	"context"
	"log/slog"
	"os"

	"courtside/config"
	"courtside/internal/delivery"
	"courtside/internal/delivery/http"
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/delivery/http/router/handler"
	deliverymiddleware "courtside/internal/delivery/middleware"
	"courtside/internal/domain/entity"
	"courtside/internal/domain/repository"
	"courtside/internal/errors"
	"courtside/internal/infra/auth"
	logs "courtside/internal/infra/log"
	"courtside/internal/infra/persistence/postgres"
	"courtside/internal/infra/pubsub"
	sessionredis "courtside/internal/infra/session/redis"
	"courtside/internal/usecase/impl"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			newRedisClient,
		),
		pubsub.Module,
	)
}

// newRedisClient connects to Redis only when it is the configured session
// backend; otherwise the dependency stays nil and unused.
func newRedisClient(params sessionredis.ClientParams) (*redis.Client, error) {
	if params.Config.Auth.SessionStore != config.SessionStoreRedis {
		return nil, nil
	}

	return sessionredis.NewClient(params)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAdminUserRepository,
			postgres.NewPlayerRepository,
			postgres.NewTransactionManager,
			fx.Annotate(
				postgres.NewAdminCredentialRepository,
				fx.ResultTags(`name:"adminCredentials"`),
			),
			fx.Annotate(
				postgres.NewPlayerCredentialRepository,
				fx.ResultTags(`name:"playerCredentials"`),
			),
			fx.Annotate(
				newAdminSessionRepository,
				fx.ResultTags(`name:"adminSessions"`),
			),
			fx.Annotate(
				newPlayerSessionRepository,
				fx.ResultTags(`name:"playerSessions"`),
			),
		),
	)
}

// newAdminSessionRepository picks the session backend from configuration.
func newAdminSessionRepository(cfg *config.Config, db *gorm.DB, client *redis.Client, logger *slog.Logger) (repository.SessionRepository, error) {
	return newSessionRepository(cfg, db, client, logger, entity.KindAdmin)
}

func newPlayerSessionRepository(cfg *config.Config, db *gorm.DB, client *redis.Client, logger *slog.Logger) (repository.SessionRepository, error) {
	return newSessionRepository(cfg, db, client, logger, entity.KindPlayer)
}

func newSessionRepository(cfg *config.Config, db *gorm.DB, client *redis.Client, logger *slog.Logger, kind entity.ActorKind) (repository.SessionRepository, error) {
	switch cfg.Auth.SessionStore {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("redis session store selected but no redis client configured")
		}

		return sessionredis.NewSessionStore(client, cfg.Auth, kind, logger), nil
	default:
		if kind == entity.KindAdmin {
			return postgres.NewAdminSessionRepository(db), nil
		}

		return postgres.NewPlayerSessionRepository(db), nil
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAdminAuthService,
			impl.NewPlayerAuthService,
			impl.NewBearerAuthenticator,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPlayerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
