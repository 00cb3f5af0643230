package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel is the database persistence model for users. This is the
// anti-corruption layer between domain and database.
type UserModel struct {
	ID             string  `gorm:"primaryKey;size:36"`
	WorkspaceID    string  `gorm:"not null;size:36;index:idx_users_workspace"`
	VenueID        *string `gorm:"size:36;index:idx_users_venue"`
	Email          string  `gorm:"uniqueIndex;not null;size:255"`
	FullName       string  `gorm:"not null;size:100"`
	RoleID         string  `gorm:"not null;size:36;index:idx_users_role"`
	Permissions    datatypes.JSON
	VenueAccess    datatypes.JSON
	HashedPassword string `gorm:"not null;size:255"`
	IsActive       bool   `gorm:"not null;default:true;index:idx_users_active"`
	IsVerified     bool   `gorm:"not null;default:false"`
	IsOwner        bool   `gorm:"not null;default:false"`
	LoginCount     int    `gorm:"not null;default:0"`
	LastLoginAt    *time.Time
	CreatedBy      string `gorm:"size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}
