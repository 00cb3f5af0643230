package handlers

import (
	"time"

	"dino/internal/domain/user"
	"dino/internal/domain/venue"
)

// UserResponse is the wire representation of a user. The password hash and
// other credential material never appear here.
type UserResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	VenueID     string     `json:"venue_id,omitempty"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	Permissions []string   `json:"permissions,omitempty"`
	VenueAccess []string   `json:"venue_access,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func newUserResponse(u *user.User, roleName string) *UserResponse {
	return &UserResponse{
		ID:          u.ID(),
		WorkspaceID: u.WorkspaceID(),
		VenueID:     u.VenueID(),
		Email:       u.Email().String(),
		FullName:    u.FullName(),
		Role:        roleName,
		IsActive:    u.IsActive(),
		Permissions: u.Permissions(),
		VenueAccess: u.VenueAccess(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}

// TableResponse is the wire representation of a table, QR token included.
// Only staff endpoints return it; the public resolution endpoint uses
// ResolvedTableResponse instead.
type TableResponse struct {
	ID          string    `json:"id"`
	VenueID     string    `json:"venue_id"`
	TableNumber int       `json:"table_number"`
	QRCode      string    `json:"qr_code"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTableResponse(t *venue.Table) *TableResponse {
	return &TableResponse{
		ID:          t.ID(),
		VenueID:     t.VenueID(),
		TableNumber: t.TableNumber(),
		QRCode:      t.QRCode(),
		Status:      t.Status().String(),
		CreatedAt:   t.CreatedAt(),
	}
}

func newTableResponses(tables []*venue.Table) []*TableResponse {
	out := make([]*TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, newTableResponse(t))
	}
	return out
}
