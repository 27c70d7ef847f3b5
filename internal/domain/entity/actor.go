// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActorKind discriminates the two kinds of authenticating actors.
type ActorKind string

const (
	// KindAdmin is the administrative user kind. Admin tokens carry no
	// "type" claim; the absence of the claim is what identifies them.
	KindAdmin ActorKind = "admin"

	// KindPlayer is the end-user player kind. Player tokens carry the
	// literal claim value "player".
	KindPlayer ActorKind = "player"
)

// String returns the kind as its wire representation.
func (k ActorKind) String() string {
	return string(k)
}

// AdminUser is an administrative account for the club platform backoffice.
type AdminUser struct {
	ID          uuid.UUID        // Unique identifier, also the token subject.
	Email       string           // Login identifier, unique among admin users.
	FirstName   string
	LastName    string
	Image       string           // Avatar URL, derived from the first name at signup.
	Role        string           // Backoffice role, defaults to "user".
	IsActive    bool
	Preferences AdminPreferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdminPreferences holds per-admin UI settings applied at signup.
type AdminPreferences struct {
	Theme         string
	Notifications bool
}

// Player is an end-user account that books courts and joins matches.
type Player struct {
	ID        uuid.UUID // Unique identifier, also the token subject.
	Email     string    // Login identifier, unique among players.
	FirstName string
	LastName  string
	Username  string
	Bio       string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the minimal resolved actor forwarded to downstream
// authorization checks once a bearer token has been accepted.
type Identity struct {
	ActorID uuid.UUID
	Kind    ActorKind
	Email   string
}
