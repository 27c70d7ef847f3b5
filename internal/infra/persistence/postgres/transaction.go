// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"courtside/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// AdminUsers creates an admin user repository bound to the transaction.
func (f *gormRepositoryFactory) AdminUsers() repository.AdminUserRepository {
	return NewAdminUserRepository(f.tx)
}

// Players creates a player repository bound to the transaction.
func (f *gormRepositoryFactory) Players() repository.PlayerRepository {
	return NewPlayerRepository(f.tx)
}

// AdminCredentials creates the admin-kind credential repository bound to the transaction.
func (f *gormRepositoryFactory) AdminCredentials() repository.CredentialRepository {
	return NewAdminCredentialRepository(f.tx)
}

// PlayerCredentials creates the player-kind credential repository bound to the transaction.
func (f *gormRepositoryFactory) PlayerCredentials() repository.CredentialRepository {
	return NewPlayerCredentialRepository(f.tx)
}

// AdminSessions creates the admin-kind session repository bound to the transaction.
func (f *gormRepositoryFactory) AdminSessions() repository.SessionRepository {
	return NewAdminSessionRepository(f.tx)
}

// PlayerSessions creates the player-kind session repository bound to the transaction.
func (f *gormRepositoryFactory) PlayerSessions() repository.SessionRepository {
	return NewPlayerSessionRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back. This is a critical safety measure.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Log the rollback error, but return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err // Return the original business error.
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
