// Package user holds the Principal aggregate: the authenticated identity
// driving every permission check.
package user

import (
	"fmt"
	"time"

	vo "dino/internal/domain/user/valueobjects"
)

// PasswordHasher abstracts the credential hashing scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// User is the principal aggregate. A user belongs to exactly one workspace,
// optionally to one venue (operators), and carries an explicit permission
// set alongside its role reference. Users are soft-deactivated, never hard
// deleted outside compensating rollback.
type User struct {
	id             string
	workspaceID    string
	venueID        string // empty for workspace-level users
	email          vo.Email
	fullName       string
	roleID         string
	permissions    []string
	venueAccess    []string // venue ids an admin may manage
	hashedPassword string
	isActive       bool
	isVerified     bool
	isOwner        bool
	loginCount     int
	lastLoginAt    *time.Time
	createdBy      string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewUser creates an active, unverified user with an already-hashed
// credential. Plaintext passwords never reach the aggregate.
func NewUser(workspaceID, venueID string, email vo.Email, fullName, roleID, hashedPassword string) (*User, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("workspace ID is required")
	}
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if roleID == "" {
		return nil, fmt.Errorf("role ID is required")
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("hashed password is required")
	}

	now := time.Now().UTC()
	return &User{
		workspaceID:    workspaceID,
		venueID:        venueID,
		email:          email,
		fullName:       fullName,
		roleID:         roleID,
		hashedPassword: hashedPassword,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructUser(
	id, workspaceID, venueID string,
	email vo.Email,
	fullName, roleID string,
	permissions, venueAccess []string,
	hashedPassword string,
	isActive, isVerified, isOwner bool,
	loginCount int,
	lastLoginAt *time.Time,
	createdBy string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	return &User{
		id:             id,
		workspaceID:    workspaceID,
		venueID:        venueID,
		email:          email,
		fullName:       fullName,
		roleID:         roleID,
		permissions:    permissions,
		venueAccess:    venueAccess,
		hashedPassword: hashedPassword,
		isActive:       isActive,
		isVerified:     isVerified,
		isOwner:        isOwner,
		loginCount:     loginCount,
		lastLoginAt:    lastLoginAt,
		createdBy:      createdBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() string            { return u.id }
func (u *User) WorkspaceID() string   { return u.workspaceID }
func (u *User) VenueID() string       { return u.venueID }
func (u *User) Email() vo.Email       { return u.email }
func (u *User) FullName() string      { return u.fullName }
func (u *User) RoleID() string        { return u.roleID }
func (u *User) HashedPassword() string { return u.hashedPassword }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) IsVerified() bool      { return u.isVerified }
func (u *User) IsOwner() bool         { return u.isOwner }
func (u *User) LoginCount() int       { return u.loginCount }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }
func (u *User) CreatedBy() string     { return u.createdBy }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

// Permissions returns a copy of the explicit permission set.
func (u *User) Permissions() []string {
	out := make([]string, len(u.permissions))
	copy(out, u.permissions)
	return out
}

// VenueAccess returns a copy of the admin venue-access list.
func (u *User) VenueAccess() []string {
	out := make([]string, len(u.venueAccess))
	copy(out, u.venueAccess)
	return out
}

// HasVenueAccess reports whether venueID is in the venue-access list.
func (u *User) HasVenueAccess(venueID string) bool {
	for _, v := range u.venueAccess {
		if v == venueID {
			return true
		}
	}
	return false
}

func (u *User) SetID(id string) error {
	if u.id != "" {
		return fmt.Errorf("user ID is already set")
	}
	if id == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	u.id = id
	return nil
}

// SetPermissions replaces the explicit permission set.
func (u *User) SetPermissions(permissions []string) {
	u.permissions = permissions
	u.touch()
}

// GrantVenueAccess appends a venue to the admin access list if absent.
func (u *User) GrantVenueAccess(venueID string) {
	if u.HasVenueAccess(venueID) {
		return
	}
	u.venueAccess = append(u.venueAccess, venueID)
	u.touch()
}

// SetCreatedBy records the creating principal; bootstrap users leave it empty.
func (u *User) SetCreatedBy(creatorID string) {
	u.createdBy = creatorID
}

// VerifyPassword checks a plaintext candidate against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	return hasher.Verify(password, u.hashedPassword)
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(hashedPassword string) error {
	if hashedPassword == "" {
		return fmt.Errorf("hashed password cannot be empty")
	}
	u.hashedPassword = hashedPassword
	u.touch()
	return nil
}

// RecordLogin bumps the login counter and timestamp.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.loginCount++
	u.lastLoginAt = &now
	u.touch()
}

// Deactivate soft-deletes the account. Tokens already issued keep verifying
// cryptographically; the bearer-authentication path rejects inactive users.
func (u *User) Deactivate() {
	u.isActive = false
	u.touch()
}

func (u *User) Activate() {
	u.isActive = true
	u.touch()
}

func (u *User) MarkVerified() {
	u.isVerified = true
	u.touch()
}

func (u *User) MarkOwner() {
	u.isOwner = true
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
