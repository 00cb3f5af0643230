package models

import "time"

// PermissionModel persists the (resource, action, scope) permission catalog.
type PermissionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"uniqueIndex;not null;size:100"`
	Resource  string `gorm:"not null;size:50;index:idx_permissions_resource"`
	Action    string `gorm:"not null;size:50"`
	Scope     string `gorm:"not null;size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PermissionModel) TableName() string {
	return "permissions"
}
