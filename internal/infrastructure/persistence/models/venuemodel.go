package models

import (
	"time"

	"gorm.io/datatypes"
)

// VenueModel persists a venue inside a workspace.
type VenueModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	WorkspaceID    string `gorm:"not null;size:36;index:idx_venues_workspace"`
	AdminID        string `gorm:"size:36"`
	Name           string `gorm:"not null;size:100"`
	IsActive       bool   `gorm:"not null;default:true"`
	OperatingHours datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VenueModel) TableName() string {
	return "venues"
}

// TableModel persists a table. Table numbers are unique within a venue and
// immutable after creation.
type TableModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	VenueID     string `gorm:"not null;size:36;uniqueIndex:idx_tables_venue_number,priority:1"`
	TableNumber int    `gorm:"not null;uniqueIndex:idx_tables_venue_number,priority:2"`
	QRCode      string `gorm:"not null;size:512"`
	Status      string `gorm:"not null;default:available;size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TableModel) TableName() string {
	return "tables"
}
