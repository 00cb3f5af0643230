package table

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dino/internal/application/access"
	"dino/internal/domain/venue"
	"dino/internal/infrastructure/qr"
	"dino/internal/shared/errors"
	"dino/internal/shared/logger"
)

// Service handles table lifecycle and QR token resolution for a venue.
type Service struct {
	tableRepo venue.TableRepository
	venueRepo venue.Repository
	codec     *qr.Codec
	logger    logger.Interface
}

// NewService creates a new table service
func NewService(
	tableRepo venue.TableRepository,
	venueRepo venue.Repository,
	codec *qr.Codec,
	logger logger.Interface,
) *Service {
	return &Service{
		tableRepo: tableRepo,
		venueRepo: venueRepo,
		codec:     codec,
		logger:    logger,
	}
}

// CreateTable creates a table with a unique number inside the venue and
// mints its QR token. The token is stored on the table so printed QR codes
// stay stable until explicitly regenerated.
func (s *Service) CreateTable(ctx context.Context, venueID string, tableNumber int) (*venue.Table, error) {
	target, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if target == nil {
		return nil, errors.NewNotFoundError("venue not found")
	}

	existing, err := s.tableRepo.GetByVenueAndNumber(ctx, venueID, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check table number: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("table %d already exists in this venue", tableNumber))
	}

	tbl, err := venue.NewTable(venueID, tableNumber)
	if err != nil {
		return nil, errors.NewValidationError("invalid table", err.Error())
	}

	// The id is assigned up front so the token can be minted before the
	// insert; a failed mint then leaves no row behind, and the stored row
	// never exists without its token.
	if err := tbl.SetID(uuid.NewString()); err != nil {
		return nil, fmt.Errorf("failed to assign table ID: %w", err)
	}

	token, err := s.codec.Mint(venueID, tbl.ID(), tableNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to mint table token: %w", err)
	}
	tbl.SetQRCode(token)

	if err := s.tableRepo.Create(ctx, tbl); err != nil {
		return nil, err
	}

	s.logger.Infow("table created", "venue_id", venueID, "table_id", tbl.ID(), "table_number", tableNumber)
	return tbl, nil
}

// RegenerateQR mints a fresh QR token for a table, invalidating previously
// printed codes for that table only at the point the old token is replaced.
// The venue id scopes the lookup so one venue cannot rotate another's codes.
func (s *Service) RegenerateQR(ctx context.Context, venueID, tableID string) (*venue.Table, error) {
	tbl, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}
	if tbl == nil || tbl.VenueID() != venueID {
		return nil, errors.NewNotFoundError("table not found")
	}

	token, err := s.codec.Mint(tbl.VenueID(), tbl.ID(), tbl.TableNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to mint table token: %w", err)
	}
	tbl.SetQRCode(token)

	if err := s.tableRepo.Update(ctx, tbl); err != nil {
		return nil, fmt.Errorf("failed to store table token: %w", err)
	}

	s.logger.Infow("table qr regenerated", "table_id", tableID)
	return tbl, nil
}

// UpdateStatus transitions a table to a new status.
func (s *Service) UpdateStatus(ctx context.Context, venueID, tableID string, status venue.TableStatus) (*venue.Table, error) {
	tbl, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}
	if tbl == nil || tbl.VenueID() != venueID {
		return nil, errors.NewNotFoundError("table not found")
	}

	if err := tbl.UpdateStatus(status); err != nil {
		return nil, errors.NewValidationError("invalid status", err.Error())
	}
	if err := s.tableRepo.Update(ctx, tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

// ListTables returns the venue's tables visible to the principal. The list
// is post-filtered with the same scope predicate the permission checks use,
// so list visibility and single-item access can never disagree.
func (s *Service) ListTables(ctx context.Context, p access.Principal, venueID string) ([]*venue.Table, error) {
	target, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if target == nil {
		return nil, errors.NewNotFoundError("venue not found")
	}

	tables, err := s.tableRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return access.FilterVenueScoped(p, tables, func(tbl *venue.Table) (string, string) {
		return tbl.VenueID(), target.WorkspaceID()
	}), nil
}

// ResolvedTable is the public outcome of a successful QR resolution.
type ResolvedTable struct {
	VenueID     string
	TableID     string
	TableNumber int
	Status      venue.TableStatus
}

// ResolveQR verifies a scanned QR token against the venue in the request
// path. Any mismatch, including a token minted for another venue, resolves
// to the same invalid-token error so the response never confirms whether
// the foreign venue or table exists.
func (s *Service) ResolveQR(ctx context.Context, pathVenueID, token string) (*ResolvedTable, error) {
	payload, err := s.codec.Verify(token)
	if err != nil {
		return nil, errors.NewBadRequestError("invalid table token")
	}

	if payload.VenueID != pathVenueID {
		s.logger.Warnw("qr token venue mismatch", "path_venue_id", pathVenueID)
		return nil, errors.NewBadRequestError("invalid table token")
	}

	target, err := s.venueRepo.GetByID(ctx, payload.VenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if target == nil || !target.IsActive() {
		return nil, errors.NewBadRequestError("invalid table token")
	}

	tbl, err := s.tableRepo.GetByID(ctx, payload.TableID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}
	if tbl == nil || tbl.VenueID() != payload.VenueID || tbl.TableNumber() != payload.TableNumber {
		return nil, errors.NewBadRequestError("invalid table token")
	}

	if !tbl.Status().AcceptsOrders() {
		return nil, errors.NewConflictError("table is not available")
	}

	return &ResolvedTable{
		VenueID:     payload.VenueID,
		TableID:     payload.TableID,
		TableNumber: payload.TableNumber,
		Status:      tbl.Status(),
	}, nil
}
