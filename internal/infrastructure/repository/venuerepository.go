package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dino/internal/domain/venue"
	"dino/internal/infrastructure/persistence/mappers"
	"dino/internal/infrastructure/persistence/models"
	"dino/internal/shared/logger"
)

// VenueRepository implements the venue store on gorm.
type VenueRepository struct {
	db     *gorm.DB
	mapper *mappers.VenueMapper
	logger logger.Interface
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB, logger logger.Interface) venue.Repository {
	return &VenueRepository{
		db:     db,
		mapper: mappers.NewVenueMapper(),
		logger: logger,
	}
}

// Create creates a new venue
func (r *VenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	model, err := r.mapper.ToModel(v)
	if err != nil {
		r.logger.Errorw("failed to map venue entity to model", "error", err)
		return fmt.Errorf("failed to map venue entity: %w", err)
	}
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create venue", "name", v.Name(), "error", err)
		return fmt.Errorf("failed to create venue: %w", err)
	}

	if v.ID() == "" {
		if err := v.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set venue ID: %w", err)
		}
	}

	r.logger.Infow("venue created", "id", model.ID, "workspace_id", model.WorkspaceID)
	return nil
}

// GetByID retrieves a venue by ID; returns (nil, nil) when not found.
func (r *VenueRepository) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	var model models.VenueModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get venue by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByWorkspace returns all venues belonging to a workspace
func (r *VenueRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*venue.Venue, error) {
	var venueModels []*models.VenueModel

	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&venueModels).Error
	if err != nil {
		r.logger.Errorw("failed to list venues by workspace", "workspace_id", workspaceID, "error", err)
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	return r.mapper.ToEntities(venueModels)
}

// Update persists changes to a venue
func (r *VenueRepository) Update(ctx context.Context, v *venue.Venue) error {
	model, err := r.mapper.ToModel(v)
	if err != nil {
		r.logger.Errorw("failed to map venue entity to model", "error", err)
		return fmt.Errorf("failed to map venue entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.VenueModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update venue", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update venue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("venue not found: %s", model.ID)
	}

	return nil
}

// Delete removes a venue row; used by the provisioning rollback.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.VenueModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete venue", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete venue: %w", result.Error)
	}

	r.logger.Infow("venue deleted", "id", id)
	return nil
}
