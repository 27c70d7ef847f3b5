package service

import (
	"courtside/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the decoded, typed payload of an access token. The raw JWT map
// is decoded into this struct exactly once, at verification; downstream code
// never re-inspects untyped claims.
//
// Kind is derived from the "type" claim: the literal "player" marks a player
// token, absence of the claim marks an admin token.
type Claims struct {
	ActorID uuid.UUID
	Kind    entity.ActorKind
	Email   string
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited access tokens.
// Verification is a pure function of the token and the shared secret; it
// never touches storage.
type TokenService interface {
	// Issue signs a payload {sub, type?, email} for the given actor. Two
	// issuances for the same actor at different instants yield different
	// tokens because the time-based claims differ.
	Issue(actorID uuid.UUID, kind entity.ActorKind, email string) (string, error)

	// Verify checks signature and expiry and returns the typed claims.
	// It fails with domain Unauthorized errors for bad signatures and
	// expired tokens.
	Verify(tokenString string) (*Claims, error)
}
