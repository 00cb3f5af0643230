// Package venue holds the venue and table aggregates. A venue belongs to
// exactly one workspace; tables belong to exactly one venue.
package venue

import (
	"fmt"
	"time"
)

// OperatingHours maps a weekday name to an open/close window.
type OperatingHours map[string]DayHours

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

type Venue struct {
	id             string
	workspaceID    string
	adminID        string // at most one admin-role user; enforced at user creation
	name           string
	isActive       bool
	operatingHours OperatingHours
	createdAt      time.Time
	updatedAt      time.Time
}

func NewVenue(workspaceID, name string) (*Venue, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("workspace ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("venue name is required")
	}

	now := time.Now().UTC()
	return &Venue{
		workspaceID: workspaceID,
		name:        name,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructVenue(id, workspaceID, adminID, name string, isActive bool, hours OperatingHours, createdAt, updatedAt time.Time) (*Venue, error) {
	if id == "" {
		return nil, fmt.Errorf("venue ID cannot be empty")
	}

	return &Venue{
		id:             id,
		workspaceID:    workspaceID,
		adminID:        adminID,
		name:           name,
		isActive:       isActive,
		operatingHours: hours,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (v *Venue) ID() string                     { return v.id }
func (v *Venue) WorkspaceID() string            { return v.workspaceID }
func (v *Venue) AdminID() string                { return v.adminID }
func (v *Venue) Name() string                   { return v.name }
func (v *Venue) IsActive() bool                 { return v.isActive }
func (v *Venue) OperatingHours() OperatingHours { return v.operatingHours }
func (v *Venue) CreatedAt() time.Time           { return v.createdAt }
func (v *Venue) UpdatedAt() time.Time           { return v.updatedAt }

func (v *Venue) SetID(id string) error {
	if v.id != "" {
		return fmt.Errorf("venue ID is already set")
	}
	if id == "" {
		return fmt.Errorf("venue ID cannot be empty")
	}
	v.id = id
	return nil
}

// AssignAdmin records the single admin-role user for this venue.
func (v *Venue) AssignAdmin(userID string) {
	v.adminID = userID
	v.updatedAt = time.Now().UTC()
}

func (v *Venue) SetOperatingHours(hours OperatingHours) {
	v.operatingHours = hours
	v.updatedAt = time.Now().UTC()
}

func (v *Venue) Deactivate() {
	v.isActive = false
	v.updatedAt = time.Now().UTC()
}
