package permission

import (
	"fmt"
	"time"
)

// Role is a workspace-agnostic system singleton seeded at bootstrap.
// Tenants never mutate roles except permission-list edits by a superadmin.
type Role struct {
	id            string
	name          string
	tier          Tier
	description   string
	permissionIDs []string
	isSystemRole  bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewRole(name string, tier Tier, description string) (*Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid role tier: %q", tier)
	}

	now := time.Now().UTC()
	return &Role{
		name:        name,
		tier:        tier,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRole(id, name string, tier Tier, description string, permissionIDs []string, isSystemRole bool, createdAt, updatedAt time.Time) (*Role, error) {
	if id == "" {
		return nil, fmt.Errorf("role ID cannot be empty")
	}

	return &Role{
		id:            id,
		name:          name,
		tier:          tier,
		description:   description,
		permissionIDs: permissionIDs,
		isSystemRole:  isSystemRole,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (r *Role) ID() string {
	return r.id
}

func (r *Role) SetID(id string) error {
	if r.id != "" {
		return fmt.Errorf("role ID is already set")
	}
	if id == "" {
		return fmt.Errorf("role ID cannot be empty")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) Tier() Tier {
	return r.tier
}

func (r *Role) Description() string {
	return r.description
}

func (r *Role) PermissionIDs() []string {
	return r.permissionIDs
}

func (r *Role) IsSystemRole() bool {
	return r.isSystemRole
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

// MarkSystemRole flags the role as a bootstrap singleton.
func (r *Role) MarkSystemRole() {
	r.isSystemRole = true
	r.updatedAt = time.Now().UTC()
}

// ReplacePermissions swaps the explicit permission id list. Only a
// superadmin caller may reach this; the application layer enforces that.
func (r *Role) ReplacePermissions(permissionIDs []string) {
	r.permissionIDs = permissionIDs
	r.updatedAt = time.Now().UTC()
}
