package impl

import (
	"context"
	"log/slog"
	"time"

	"courtside/config"
	"courtside/internal/domain/entity"
	"courtside/internal/domain/repository"
	"courtside/internal/domain/service"
	"courtside/internal/usecase"

	"github.com/pkg/errors"
)

// sessionResolver validates a decoded token for one actor kind against its
// session store. The two kinds share the mechanics and differ only in the
// revocation policy: a strict resolver rejects when no active session backs
// the token, a lenient one accepts and logs, so session storage faults
// degrade revocability instead of locking the kind out.
type sessionResolver struct {
	kind          entity.ActorKind
	policy        string
	sessions      repository.SessionRepository
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewAdminTokenResolver builds the resolver for admin tokens (no "type"
// claim). The admin policy defaults to lenient.
func NewAdminTokenResolver(cfg *config.AuthConfig, sessions repository.SessionRepository, logger *slog.Logger) usecase.TokenResolver {
	return &sessionResolver{
		kind:          entity.KindAdmin,
		policy:        cfg.AdminSessionPolicy,
		sessions:      sessions,
		lookupTimeout: cfg.SessionLookupTimeout,
		logger:        logger,
	}
}

// NewPlayerTokenResolver builds the resolver for player tokens ("type"
// claim set to "player"). The player policy defaults to strict.
func NewPlayerTokenResolver(cfg *config.AuthConfig, sessions repository.SessionRepository, logger *slog.Logger) usecase.TokenResolver {
	return &sessionResolver{
		kind:          entity.KindPlayer,
		policy:        cfg.PlayerSessionPolicy,
		sessions:      sessions,
		lookupTimeout: cfg.SessionLookupTimeout,
		logger:        logger,
	}
}

// Resolve checks that the claims are of this resolver's kind and applies the
// configured session policy. The session read is bounded by lookupTimeout so
// a slow store cannot stall authentication.
func (r *sessionResolver) Resolve(ctx context.Context, accessToken string, claims *service.Claims) usecase.Resolution {
	if claims.Kind != r.kind {
		return usecase.NotApplicable()
	}

	identity := &entity.Identity{
		ActorID: claims.ActorID,
		Kind:    r.kind,
		Email:   claims.Email,
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	session, err := r.sessions.FindByTokenAndOwner(lookupCtx, accessToken, claims.ActorID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return r.resolveMissingSession(lookupCtx, accessToken, identity)
		}

		if r.policy == config.SessionPolicyStrict {
			r.logger.Warn("Session lookup failed, rejecting token",
				slog.Any("kind", r.kind), slog.Any("actorID", claims.ActorID), slog.Any("error", err))

			return usecase.Rejected("session lookup failed")
		}

		r.logger.Warn("Session lookup failed, accepting token by lenient policy",
			slog.Any("kind", r.kind), slog.Any("actorID", claims.ActorID), slog.Any("error", err))

		return usecase.Accepted(identity)
	}

	if !session.IsActive {
		return usecase.Rejected("session revoked")
	}

	return usecase.Accepted(identity)
}

// resolveMissingSession handles a verified token with no session row for its
// owner. Under the strict policy a second by-token lookup distinguishes the
// stolen-token shape (session owned by someone else) from plain absence, so
// the two reject with different diagnostics.
func (r *sessionResolver) resolveMissingSession(ctx context.Context, accessToken string, identity *entity.Identity) usecase.Resolution {
	if r.policy != config.SessionPolicyStrict {
		r.logger.Warn("No session recorded for token, accepting by lenient policy",
			slog.Any("kind", r.kind), slog.Any("actorID", identity.ActorID))

		return usecase.Accepted(identity)
	}

	if _, err := r.sessions.FindByToken(ctx, accessToken); err == nil {
		r.logger.Warn("Token session owned by a different actor",
			slog.Any("kind", r.kind), slog.Any("actorID", identity.ActorID))

		return usecase.Rejected("session owner mismatch")
	}

	return usecase.Rejected("no session recorded for token")
}
