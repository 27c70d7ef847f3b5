package usecase

import (
	"context"

	"courtside/internal/domain/entity"
	"courtside/internal/domain/service"
)

// ResolutionStatus is the verdict of a single token resolver.
type ResolutionStatus int

const (
	// ResolutionNotApplicable means the token is not of this resolver's
	// kind; the chain should try the next one.
	ResolutionNotApplicable ResolutionStatus = iota
	// ResolutionAccepted means the resolver authenticated the token.
	ResolutionAccepted
	// ResolutionRejected means the token is of this resolver's kind but
	// failed its checks; the chain must stop without consulting others.
	ResolutionRejected
)

// Resolution is the outcome of offering a token to one resolver.
type Resolution struct {
	Status   ResolutionStatus
	Identity *entity.Identity
	Reason   string
}

// Accepted builds a successful resolution carrying the caller's identity.
func Accepted(identity *entity.Identity) Resolution {
	return Resolution{Status: ResolutionAccepted, Identity: identity}
}

// NotApplicable signals the token belongs to some other resolver.
func NotApplicable() Resolution {
	return Resolution{Status: ResolutionNotApplicable}
}

// Rejected signals a definitive authentication failure with a diagnostic
// reason. The reason is for logs; clients see a generic unauthorized error.
func Rejected(reason string) Resolution {
	return Resolution{Status: ResolutionRejected, Reason: reason}
}

// TokenResolver validates an already-decoded token for a single actor kind.
// The chain verifies the signature once and hands each resolver the parsed
// claims together with the raw token string for session lookup.
type TokenResolver interface {
	Resolve(ctx context.Context, accessToken string, claims *service.Claims) Resolution
}

// BearerAuthenticator resolves a raw bearer token to a caller identity.
// It is the single entry point the transport layer authenticates through.
type BearerAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.Identity, error)
}
