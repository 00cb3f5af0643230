package models

import "time"

// RoleModel persists the fixed role tier set. Roles are system singletons
// seeded at bootstrap.
type RoleModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"uniqueIndex;not null;size:50"`
	TierRank     int    `gorm:"not null"`
	Description  string `gorm:"size:255"`
	IsSystemRole bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RoleModel) TableName() string {
	return "roles"
}

// RolePermissionModel is the role ↔ permission join table.
type RolePermissionModel struct {
	RoleID       string `gorm:"primaryKey;size:36"`
	PermissionID string `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time
}

func (RolePermissionModel) TableName() string {
	return "role_permissions"
}
