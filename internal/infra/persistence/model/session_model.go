package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminSessionModel mirrors the 'admin_sessions' table. One row per login,
// keyed by the exact signed token string. Rows are never updated except for
// the is_active flag; expiry lives inside the token itself.
type AdminSessionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AccessToken string    `gorm:"type:text;not null;uniqueIndex"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminSessionModel) TableName() string {
	return "admin_sessions"
}

// PlayerSessionModel mirrors the 'player_sessions' table.
type PlayerSessionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AccessToken string    `gorm:"type:text;not null;uniqueIndex"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlayerSessionModel) TableName() string {
	return "player_sessions"
}
