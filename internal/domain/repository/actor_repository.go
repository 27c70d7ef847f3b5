// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"courtside/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrActorNotFound is a domain-specific error returned when an admin user or player is not found.
var ErrActorNotFound = errors.New("actor not found")

// AdminUserRepository defines the standard operations for admin user persistence.
// The application layer depends on this interface, not the concrete implementation.
type AdminUserRepository interface {
	// FindByID retrieves a single admin user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)

	// FindByEmail retrieves a single admin user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)

	// Create persists a new admin user entity to the storage.
	Create(ctx context.Context, user *entity.AdminUser) error

	// Delete removes an admin user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlayerRepository defines the standard operations for player persistence.
type PlayerRepository interface {
	// FindByID retrieves a single player by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Player, error)

	// FindByEmail retrieves a single player by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.Player, error)

	// Create persists a new player entity to the storage.
	Create(ctx context.Context, player *entity.Player) error

	// Delete removes a player by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
