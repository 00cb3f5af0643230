package user

import "context"

// Repository is the principal store collaborator. GetByID and GetByEmail
// return (nil, nil) when no record exists; callers fail closed on nil.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error

	// CountActiveByVenueRole counts active users holding roleID inside a
	// venue; used for the one-admin-per-venue constraint.
	CountActiveByVenueRole(ctx context.Context, venueID, roleID string) (int64, error)
}
