package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminCredentialModel mirrors the 'admin_credentials' table. One row per
// admin user; the unique owner index is what makes Create fail on a second
// signup for the same account.
type AdminCredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminCredentialModel) TableName() string {
	return "admin_credentials"
}

// PlayerCredentialModel mirrors the 'player_credentials' table.
type PlayerCredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlayerCredentialModel) TableName() string {
	return "player_credentials"
}
