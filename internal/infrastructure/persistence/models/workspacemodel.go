package models

import "time"

// WorkspaceModel persists the tenant root.
type WorkspaceModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;not null;size:120"`
	DisplayName string `gorm:"not null;size:100"`
	OwnerID     string `gorm:"size:36"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (WorkspaceModel) TableName() string {
	return "workspaces"
}
