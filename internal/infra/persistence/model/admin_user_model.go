// Package model contains the GORM table mappings. Types are exported so the
// GORM Gen tool can consume them from cmd/gen.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminUserModel mirrors the 'admin_users' table. PostgreSQL generates UUIDs
// via uuid_generate_v7().
type AdminUserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	FirstName     string    `gorm:"type:varchar(100)"`
	LastName      string    `gorm:"type:varchar(100)"`
	Image         string    `gorm:"type:varchar(512)"`
	Role          string    `gorm:"type:varchar(50);not null;default:'user'"`
	IsActive      bool      `gorm:"not null;default:true"`
	Theme         string    `gorm:"type:varchar(50);not null;default:'light'"`
	Notifications bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Credential *AdminCredentialModel `gorm:"foreignKey:OwnerID"`
	Sessions   []AdminSessionModel   `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (AdminUserModel) TableName() string {
	return "admin_users"
}
