package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so that multi-step operations (actor plus credential at
// signup, actor plus credential plus sessions at removal) stay atomic.
type RepositoryFactory interface {
	// AdminUsers returns an AdminUserRepository bound to the current transaction.
	AdminUsers() AdminUserRepository

	// Players returns a PlayerRepository bound to the current transaction.
	Players() PlayerRepository

	// AdminCredentials returns the admin-kind CredentialRepository bound to the current transaction.
	AdminCredentials() CredentialRepository

	// PlayerCredentials returns the player-kind CredentialRepository bound to the current transaction.
	PlayerCredentials() CredentialRepository

	// AdminSessions returns the admin-kind SessionRepository bound to the current transaction.
	AdminSessions() SessionRepository

	// PlayerSessions returns the player-kind SessionRepository bound to the current transaction.
	PlayerSessions() SessionRepository
}
