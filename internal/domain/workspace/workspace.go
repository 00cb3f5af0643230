// Package workspace holds the tenant-root aggregate. A workspace is created
// once at onboarding and never deleted outside compensating rollback.
package workspace

import (
	"fmt"
	"time"
)

type Workspace struct {
	id          string
	name        string // globally unique slug: display name + random suffix
	displayName string
	ownerID     string
	venueIDs    []string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewWorkspace(name, displayName, ownerID string) (*Workspace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace name is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("workspace display name is required")
	}

	now := time.Now().UTC()
	return &Workspace{
		name:        name,
		displayName: displayName,
		ownerID:     ownerID,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructWorkspace(id, name, displayName, ownerID string, venueIDs []string, isActive bool, createdAt, updatedAt time.Time) (*Workspace, error) {
	if id == "" {
		return nil, fmt.Errorf("workspace ID cannot be empty")
	}

	return &Workspace{
		id:          id,
		name:        name,
		displayName: displayName,
		ownerID:     ownerID,
		venueIDs:    venueIDs,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (w *Workspace) ID() string          { return w.id }
func (w *Workspace) Name() string        { return w.name }
func (w *Workspace) DisplayName() string { return w.displayName }
func (w *Workspace) OwnerID() string     { return w.ownerID }
func (w *Workspace) IsActive() bool      { return w.isActive }
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }
func (w *Workspace) UpdatedAt() time.Time { return w.updatedAt }

func (w *Workspace) VenueIDs() []string {
	out := make([]string, len(w.venueIDs))
	copy(out, w.venueIDs)
	return out
}

func (w *Workspace) SetID(id string) error {
	if w.id != "" {
		return fmt.Errorf("workspace ID is already set")
	}
	if id == "" {
		return fmt.Errorf("workspace ID cannot be empty")
	}
	w.id = id
	return nil
}

// AddVenue registers a venue id with the workspace if not already present.
func (w *Workspace) AddVenue(venueID string) {
	for _, v := range w.venueIDs {
		if v == venueID {
			return
		}
	}
	w.venueIDs = append(w.venueIDs, venueID)
	w.updatedAt = time.Now().UTC()
}

func (w *Workspace) Deactivate() {
	w.isActive = false
	w.updatedAt = time.Now().UTC()
}
