package model

import (
	"time"

	"github.com/google/uuid"
)

// PlayerModel mirrors the 'players' table.
type PlayerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Username  string    `gorm:"type:varchar(100)"`
	Bio       string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Credential *PlayerCredentialModel `gorm:"foreignKey:OwnerID"`
	Sessions   []PlayerSessionModel   `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (PlayerModel) TableName() string {
	return "players"
}
