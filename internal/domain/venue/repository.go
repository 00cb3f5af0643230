package venue

import "context"

// Repository is the venue store collaborator; GetByID returns (nil, nil)
// when the venue does not exist.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*Venue, error)
	Update(ctx context.Context, v *Venue) error

	// Delete hard-deletes a venue. Only the provisioning rollback uses it.
	Delete(ctx context.Context, id string) error
}

type TableRepository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, id string) (*Table, error)
	GetByVenueAndNumber(ctx context.Context, venueID string, tableNumber int) (*Table, error)
	ListByVenue(ctx context.Context, venueID string) ([]*Table, error)
	Update(ctx context.Context, t *Table) error
	Delete(ctx context.Context, id string) error
}
