// Package redis provides a Redis-backed session store. It implements the
// same repository interface as the PostgreSQL tables, so the backend is a
// pure configuration choice.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"courtside/config"
	"courtside/internal/domain/entity"
	"courtside/internal/domain/lifecycle"
	"courtside/internal/domain/repository"
	"courtside/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// sessionTTLSlack keeps the row alive slightly past token expiry so the
// GetSession endpoints can still see just-expired sessions.
const sessionTTLSlack = 5 * time.Minute

// ClientParams defines the required parameters for the Redis client.
type ClientParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewClient creates the shared Redis client with lifecycle management.
func NewClient(params ClientParams) (*redis.Client, error) {
	if params.Config.Redis == nil {
		return nil, errors.New("redis config is required")
	}

	opts, err := redis.ParseURL(params.Config.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis URL")
	}
	opts.PoolSize = params.Config.Redis.PoolSize
	opts.MinIdleConns = params.Config.Redis.MinIdleConns

	client := redis.NewClient(opts)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// sessionStore implements repository.SessionRepository for one actor kind.
// Each session lives under a token-derived key; a per-owner set indexes
// tokens so owner-wide revokes need no scan.
type sessionStore struct {
	client *redis.Client
	kind   entity.ActorKind
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionStore builds a session store for the given kind. The TTL tracks
// the token lifetime: once a token can no longer verify, its row is garbage.
func NewSessionStore(client *redis.Client, cfg *config.AuthConfig, kind entity.ActorKind, logger *slog.Logger) repository.SessionRepository {
	return &sessionStore{
		client: client,
		kind:   kind,
		ttl:    cfg.TokenTTL + sessionTTLSlack,
		logger: logger,
	}
}

func (s *sessionStore) tokenKey(accessToken string) string {
	return fmt.Sprintf("courtside:session:%s:%s", s.kind, accessToken)
}

func (s *sessionStore) ownerKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("courtside:session:%s:owner:%s", s.kind, ownerID)
}

// Create stores the session row and indexes it under its owner.
func (s *sessionStore) Create(ctx context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.Kind = s.kind

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.tokenKey(session.AccessToken), data, s.ttl)
	pipe.SAdd(ctx, s.ownerKey(session.OwnerID), session.AccessToken)
	pipe.Expire(ctx, s.ownerKey(session.OwnerID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store session")
	}

	return nil
}

// FindByToken retrieves a session by exact token string.
func (s *sessionStore) FindByToken(ctx context.Context, accessToken string) (*entity.Session, error) {
	data, err := s.client.Get(ctx, s.tokenKey(accessToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	return &session, nil
}

// FindByTokenAndOwner retrieves a session matching both token and owner.
func (s *sessionStore) FindByTokenAndOwner(ctx context.Context, accessToken string, ownerID uuid.UUID) (*entity.Session, error) {
	session, err := s.FindByToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != ownerID {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

// DeactivateByOwner rewrites every indexed session with is_active false,
// preserving each row's remaining TTL.
func (s *sessionStore) DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) error {
	tokens, err := s.client.SMembers(ctx, s.ownerKey(ownerID)).Result()
	if err != nil {
		return errors.Wrap(err, "failed to list owner sessions")
	}

	for _, token := range tokens {
		session, err := s.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				// Row expired after the index entry; nothing to revoke.
				s.logger.Debug("Skipping expired session during revoke", slog.Any("ownerID", ownerID))

				continue
			}

			return err
		}

		session.IsActive = false
		session.UpdatedAt = time.Now()

		data, err := json.Marshal(session)
		if err != nil {
			return errors.Wrap(err, "failed to marshal session")
		}
		if err := s.client.Set(ctx, s.tokenKey(token), data, redis.KeepTTL).Err(); err != nil {
			return errors.Wrap(err, "failed to deactivate session")
		}
	}

	return nil
}

// DeleteByOwner removes every indexed session together with the index.
func (s *sessionStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	tokens, err := s.client.SMembers(ctx, s.ownerKey(ownerID)).Result()
	if err != nil {
		return errors.Wrap(err, "failed to list owner sessions")
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, s.tokenKey(token))
	}
	keys = append(keys, s.ownerKey(ownerID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "failed to delete owner sessions")
	}

	return nil
}
